package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDStrategy selects how record identifiers are built.
type IDStrategy string

const (
	// IDStrategySequential builds zero-padded, prefixed counters like CLI00042.
	IDStrategySequential IDStrategy = "sequential"

	// IDStrategyUUID builds time-ordered UUIDv7 strings.
	IDStrategyUUID IDStrategy = "uuid"
)

var ErrUnknownIDStrategy = errors.New("unknown id strategy")
var ErrDuplicateID = errors.New("identifier issued twice")

// ParseIDStrategy converts a configuration value into an IDStrategy.
func ParseIDStrategy(value string) (IDStrategy, error) {
	switch strategy := IDStrategy(strings.ToLower(strings.TrimSpace(value))); strategy {
	case IDStrategySequential, IDStrategyUUID:
		return strategy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIDStrategy, value)
	}
}

type idFormat struct {
	prefix string
	width  int
}

var (
	clientIDFormat      = idFormat{prefix: "CLI", width: 5}
	productIDFormat     = idFormat{prefix: "PROD", width: 3}
	transactionIDFormat = idFormat{prefix: "TRA", width: 6}
	interactionIDFormat = idFormat{prefix: "INT", width: 7}
)

// idSequence issues identifiers for one entity set and guarantees their uniqueness within it.
type idSequence struct {
	strategy IDStrategy
	format   idFormat
	next     int
	issued   map[string]struct{}
}

func newIDSequence(strategy IDStrategy, format idFormat, capacity int) *idSequence {
	return &idSequence{
		strategy: strategy,
		format:   format,
		issued:   make(map[string]struct{}, capacity),
	}
}

// Next returns a fresh identifier.
func (s *idSequence) Next() (string, error) {
	var id string

	switch s.strategy {
	case IDStrategyUUID:
		uid, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("failed to create uuid: %w", err)
		}
		id = uid.String()

	default:
		id = fmt.Sprintf("%s%0*d", s.format.prefix, s.format.width, s.next)
	}

	if _, dup := s.issued[id]; dup {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	s.issued[id] = struct{}{}
	s.next++

	return id, nil
}
