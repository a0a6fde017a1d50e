/*
Package order Order aggregate

An order starts empty in CREATED, collects line items while CREATED, and is
finished either by payment (COMPLETE) or cancellation (CANCELLED). Both
terminal states are final.

Line items hold a snapshot of the product at the time it was added, so later
price changes do not alter existing orders. There is at most one line item
per product id.
*/
package order

import (
	"time"

	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

const EntityName = "order"

// Order aggregate root
type Order struct {
	id          int64
	status      Status
	lineItems   []LineItem
	createdOn   time.Time
	lastUpdated time.Time

	events []shared.DomainEvent
}

// ProductSnapshot Value object: the product fields copied into a line item.
type ProductSnapshot struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
}

// LineItem Entity within the aggregate, addressed by product id.
type LineItem struct {
	product  ProductSnapshot
	quantity int
}

// Status Order status enum
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusComplete  Status = "COMPLETE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

// NewOrder Create an empty order in CREATED.
func NewOrder(id int64) (*Order, error) {
	if !shared.ValidIdentity(id) {
		return nil, shared.NewInvalidIdentityError(EntityName, id)
	}
	now := time.Now()
	o := &Order{
		id:          id,
		status:      StatusCreated,
		createdOn:   now,
		lastUpdated: now,
	}
	o.recordEvent(NewCreatedEvent(id))
	return o, nil
}

// ============================================================================
// ReconstructionDTO - For Repository Layer Use Only
// ============================================================================

type ReconstructionDTO struct {
	ID          int64
	Status      Status
	LineItems   []LineItemDTO
	CreatedOn   time.Time
	LastUpdated time.Time
}

type LineItemDTO struct {
	Product  ProductSnapshot
	Quantity int
}

func RebuildFromDTO(dto ReconstructionDTO) *Order {
	items := make([]LineItem, len(dto.LineItems))
	for i, it := range dto.LineItems {
		items[i] = LineItem{product: it.Product, quantity: it.Quantity}
	}
	return &Order{
		id:          dto.ID,
		status:      dto.Status,
		lineItems:   items,
		createdOn:   dto.CreatedOn,
		lastUpdated: dto.LastUpdated,
	}
}

func (o *Order) Snapshot() ReconstructionDTO {
	items := make([]LineItemDTO, len(o.lineItems))
	for i, it := range o.lineItems {
		items[i] = LineItemDTO{Product: it.product, Quantity: it.quantity}
	}
	return ReconstructionDTO{
		ID:          o.id,
		Status:      o.status,
		LineItems:   items,
		CreatedOn:   o.createdOn,
		LastUpdated: o.lastUpdated,
	}
}

// ============================================================================
// Line items
// ============================================================================

// AddLineItem merges quantity into the line item for product.ID, creating it
// when absent. quantity below 1 is treated as 1.
func (o *Order) AddLineItem(product ProductSnapshot, quantity int) error {
	if o.status != StatusCreated {
		return NewInvalidOrderStateError(o.status, "add line item")
	}
	if quantity < 1 {
		quantity = 1
	}

	if i := o.indexOf(product.ID); i >= 0 {
		o.lineItems[i].quantity += quantity
	} else {
		o.lineItems = append(o.lineItems, LineItem{product: product, quantity: quantity})
	}
	o.touch()
	return nil
}

// RemoveLineItem subtracts quantity; the line item is dropped once it
// reaches zero. Unknown products are a no-op. quantity below 1 is treated as 1.
func (o *Order) RemoveLineItem(productID int64, quantity int) error {
	if o.status != StatusCreated {
		return NewInvalidOrderStateError(o.status, "remove line item")
	}
	if quantity < 1 {
		quantity = 1
	}

	i := o.indexOf(productID)
	if i < 0 {
		return nil
	}
	o.lineItems[i].quantity -= quantity
	if o.lineItems[i].quantity <= 0 {
		o.lineItems = append(o.lineItems[:i], o.lineItems[i+1:]...)
	}
	o.touch()
	return nil
}

func (o *Order) indexOf(productID int64) int {
	for i, it := range o.lineItems {
		if it.product.ID == productID {
			return i
		}
	}
	return -1
}

// Total is recomputed on every call.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.lineItems {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ============================================================================
// State transitions
// ============================================================================

// Complete CREATED -> COMPLETE
func (o *Order) Complete() error {
	if o.status != StatusCreated {
		return NewInvalidOrderStateError(o.status, "complete")
	}
	o.status = StatusComplete
	o.touch()
	o.recordEvent(NewCompletedEvent(o.id, o.Total()))
	return nil
}

// Cancel CREATED -> CANCELLED
func (o *Order) Cancel() error {
	if o.status != StatusCreated {
		return NewInvalidOrderStateError(o.status, "cancel")
	}
	o.status = StatusCancelled
	o.touch()
	o.recordEvent(NewCancelledEvent(o.id))
	return nil
}

func (o *Order) touch() {
	o.lastUpdated = time.Now()
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() int64              { return o.id }
func (o *Order) Status() Status         { return o.status }
func (o *Order) CreatedOn() time.Time   { return o.createdOn }
func (o *Order) LastUpdated() time.Time { return o.lastUpdated }

// LineItems Return copy of the line items
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// LineItem returns the line item for productID, if any.
func (o *Order) LineItem(productID int64) (LineItem, bool) {
	if i := o.indexOf(productID); i >= 0 {
		return o.lineItems[i], true
	}
	return LineItem{}, false
}

func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) recordEvent(event shared.DomainEvent) {
	o.events = append(o.events, event)
}

// LineItem Getters

func (it LineItem) Product() ProductSnapshot { return it.product }
func (it LineItem) ProductID() int64         { return it.product.ID }
func (it LineItem) Quantity() int            { return it.quantity }
func (it LineItem) Subtotal() decimal.Decimal {
	return it.product.Price.Mul(decimal.NewFromInt(int64(it.quantity)))
}

var _ shared.AggregateRoot = (*Order)(nil)
