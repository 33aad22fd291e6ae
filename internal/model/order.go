package model

import (
	"time"

	"github.com/google/uuid"
)

type (
	OrderStatus string
	Role        string
)

const (
	StatusPending   OrderStatus = "PENDING"
	StatusVerifying OrderStatus = "VERIFYING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var validOrderStatuses = map[OrderStatus]bool{
	StatusPending:   true,
	StatusVerifying: true,
	StatusPaid:      true,
	StatusShipped:   true,
	StatusCompleted: true,
	StatusCancelled: true,
}

func ValidOrderStatus(s OrderStatus) bool { return validOrderStatuses[s] }

// Terminal reports whether no further transition is exposed to customers.
// Admins may still move out of a terminal status when the service is
// configured to allow it.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Actor identifies who requests an order mutation. Authentication itself is
// an external concern; the transport layer fills this from the gateway.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// OrderItem is a price snapshot taken at order creation; it never changes
// afterwards even if the catalog price does.
type OrderItem struct {
	ComponentID    string `json:"component_id"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Order struct {
	// Unique identifier of the order.
	ID uuid.UUID
	// UUID of the user who placed the order.
	UserID uuid.UUID
	// Immutable price snapshot of the ordered components.
	Items []OrderItem
	// Total computed from Items at creation time.
	TotalCents int64
	Status     OrderStatus
	// Set by an admin when a payment slip is rejected; meaningful only
	// until the customer resubmits proof.
	RejectionReason *string
	// Shipping metadata, set once shipped.
	TrackingNumber *string
	Carrier        *string
	// Reference to the uploaded payment slip (storage is external).
	PaymentProof *string
	// Version guards every write (optimistic concurrency).
	Version   int64
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

type CreateOrderParams struct {
	UserID uuid.UUID
	Items  []OrderItem
}

type CreateOrderResult struct {
	ID         uuid.UUID
	TotalCents int64
}

type SubmitPaymentProofParams struct {
	OrderID  uuid.UUID
	ProofRef string
}

type SetStatusParams struct {
	OrderID         uuid.UUID
	Status          OrderStatus
	RejectionReason *string
	TrackingNumber  *string
	Carrier         *string
}

type SetTrackingParams struct {
	OrderID        uuid.UUID
	TrackingNumber string
	Carrier        string
}

// StatusChanged is the event published after every successful status
// mutation.
type StatusChanged struct {
	EventID    uuid.UUID
	OrderID    uuid.UUID
	UserID     uuid.UUID
	OldStatus  OrderStatus
	NewStatus  OrderStatus
	OccurredAt time.Time
}

// CheckoutEvent is produced by the external storefront checkout; consuming
// it creates an order.
type CheckoutEvent struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Items   []OrderItem
}
