package po

import (
	"time"

	"storefront/domain/order"

	"github.com/shopspring/decimal"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type OrderPO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Status      string    `gorm:"size:20;index;not null"`
	CreatedOn   time.Time `gorm:"column:created_on;index;not null"`
	LastUpdated time.Time `gorm:"column:last_updated;not null"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderLineItemPO Line item persistence object, one row per (order, product)
type OrderLineItemPO struct {
	OrderID            int64           `gorm:"primaryKey;autoIncrement:false"` // Only store ID, no GORM association
	ProductID          int64           `gorm:"primaryKey;autoIncrement:false"`
	Position           int             `gorm:"not null"`
	ProductName        string          `gorm:"size:255;not null"`
	ProductDescription string          `gorm:"type:text"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity           int             `gorm:"not null"`
}

// TableName Specify table name
func (OrderLineItemPO) TableName() string {
	return "order_line_items"
}

// FromOrderDomain Convert domain model to persistence object
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderLineItemPO) {
	dto := o.Snapshot()
	orderPO := &OrderPO{
		ID:          dto.ID,
		Status:      string(dto.Status),
		CreatedOn:   dto.CreatedOn,
		LastUpdated: dto.LastUpdated,
	}

	itemPOs := make([]OrderLineItemPO, len(dto.LineItems))
	for i, item := range dto.LineItems {
		itemPOs[i] = OrderLineItemPO{
			OrderID:            dto.ID,
			ProductID:          item.Product.ID,
			Position:           i,
			ProductName:        item.Product.Name,
			ProductDescription: item.Product.Description,
			UnitPrice:          item.Product.Price,
			Quantity:           item.Quantity,
		}
	}
	return orderPO, itemPOs
}

// ToDomain Convert persistence object to domain model
// itemPOs must be ordered by Position
func (po *OrderPO) ToDomain(itemPOs []OrderLineItemPO) *order.Order {
	items := make([]order.LineItemDTO, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.LineItemDTO{
			Product: order.ProductSnapshot{
				ID:          itemPO.ProductID,
				Name:        itemPO.ProductName,
				Description: itemPO.ProductDescription,
				Price:       itemPO.UnitPrice,
			},
			Quantity: itemPO.Quantity,
		}
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          po.ID,
		Status:      order.Status(po.Status),
		LineItems:   items,
		CreatedOn:   po.CreatedOn,
		LastUpdated: po.LastUpdated,
	})
}
