package datalake

import (
	"time"
)

// InteractionType is the kind of digital touch point an Interaction records.
type InteractionType string

const (
	InteractionTypeProductView      InteractionType = "Product View"
	InteractionTypeInvestCTAClick   InteractionType = "Invest CTA Click"
	InteractionTypeProductSearch    InteractionType = "Product Search"
	InteractionTypeMaterialDownload InteractionType = "Material Download"
	InteractionTypeSupportContact   InteractionType = "Support Contact"
	InteractionTypeLoggedAreaAccess InteractionType = "Logged Area Access"
)

// Interaction is a touch point of one Client, optionally about one Product.
//
// ProductID, DurationSeconds and SearchTerm are nil unless the interaction type licenses them,
// see InteractionRuleFor.
type Interaction struct {
	ID              string
	ClientID        string
	ProductID       *string
	Type            InteractionType
	OccurredAt      time.Time
	DurationSeconds *int
	SearchTerm      *string
}

// Interactions is an alias type for a slice of Interaction.
type Interactions = []Interaction
