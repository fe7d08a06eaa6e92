package domain

import "time"

type ResourceType string

const (
	ResourceTypeHotel ResourceType = "hotel"
)

// Supplier is the contracting party that owns resources.
type Supplier struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Resource is one sellable asset of a supplier (a hotel, a coach, ...). Its
// type selects the pricing/availability strategy used for anything sold
// against it.
type Resource struct {
	ID         string
	SupplierID string
	Name       string
	Type       ResourceType
	CreatedAt  time.Time
}

// Product is a sellable configuration of a resource (a room category, a seat
// class).
type Product struct {
	ID         string
	ResourceID string
	Name       string
	CreatedAt  time.Time
}

// Offer is a published, bookable variant of a product tied to a contract.
type Offer struct {
	ID         string
	ProductID  string
	ContractID string
	Name       string
	CreatedAt  time.Time
}
