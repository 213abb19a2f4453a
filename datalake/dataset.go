package datalake

// Dataset holds every entity set produced by a single run.
type Dataset struct {
	Clients      Clients
	Products     Products
	Transactions Transactions
	Interactions Interactions
	MarketData   MarketData
}

// ClientIndex maps client IDs to their position in Dataset.Clients.
type ClientIndex map[string]int

// ProductIndex maps product IDs to their position in Dataset.Products.
type ProductIndex map[string]int

// ClientIndex builds a lookup from client ID to client position.
// When IDs are duplicated, the first occurrence wins.
func (d Dataset) ClientIndex() ClientIndex {
	index := make(ClientIndex, len(d.Clients))
	for i, client := range d.Clients {
		if _, seen := index[client.ID]; !seen {
			index[client.ID] = i
		}
	}

	return index
}

// ProductIndex builds a lookup from product ID to product position.
// When IDs are duplicated, the first occurrence wins.
func (d Dataset) ProductIndex() ProductIndex {
	index := make(ProductIndex, len(d.Products))
	for i, product := range d.Products {
		if _, seen := index[product.ID]; !seen {
			index[product.ID] = i
		}
	}

	return index
}

// RowCounts returns the number of records per entity set, keyed by EntitySet.
func (d Dataset) RowCounts() map[EntitySet]int {
	return map[EntitySet]int{
		EntitySetClients:      len(d.Clients),
		EntitySetProducts:     len(d.Products),
		EntitySetTransactions: len(d.Transactions),
		EntitySetInteractions: len(d.Interactions),
		EntitySetMarketData:   len(d.MarketData),
	}
}

// EntitySet names one of the entity sets of a Dataset.
type EntitySet string

const (
	EntitySetClients      EntitySet = "clients"
	EntitySetProducts     EntitySet = "products"
	EntitySetTransactions EntitySet = "transactions"
	EntitySetInteractions EntitySet = "interactions"
	EntitySetMarketData   EntitySet = "market_data"
)

// AllEntitySets lists the entity sets in generation order.
func AllEntitySets() []EntitySet {
	return []EntitySet{
		EntitySetClients,
		EntitySetProducts,
		EntitySetTransactions,
		EntitySetInteractions,
		EntitySetMarketData,
	}
}
