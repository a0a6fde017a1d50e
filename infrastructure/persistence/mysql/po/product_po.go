package po

import (
	"time"

	"storefront/domain/product"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductPO Product persistence object
// The category is stored as a denormalized snapshot; CategoryID 0 means none.
type ProductPO struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement:false"`
	Name                string          `gorm:"size:255;uniqueIndex;not null"`
	Description         string          `gorm:"type:text"`
	Price               decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CategoryID          int64           `gorm:"index;not null;default:0"` // Only store ID, no association with Category
	CategoryName        string          `gorm:"size:255"`
	CategoryDescription string          `gorm:"type:text"`
	TagIDs              datatypes.JSON  `gorm:"column:tag_ids;type:json"`
	Retired             bool            `gorm:"not null;default:false"`
	CreatedOn           time.Time       `gorm:"column:created_on;not null"`
	LastUpdated         time.Time       `gorm:"column:last_updated;not null"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *product.Product) *ProductPO {
	dto := p.Snapshot()
	return &ProductPO{
		ID:                  dto.ID,
		Name:                dto.Name,
		Description:         dto.Description,
		Price:               dto.Price,
		CategoryID:          dto.Category.ID,
		CategoryName:        dto.Category.Name,
		CategoryDescription: dto.Category.Description,
		TagIDs:              idsToJSON(dto.Tags),
		Retired:             dto.Retired,
		CreatedOn:           dto.CreatedOn,
		LastUpdated:         dto.LastUpdated,
	}
}

func (po *ProductPO) ToDomain() *product.Product {
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Price:       po.Price,
		Category: product.CategorySnapshot{
			ID:          po.CategoryID,
			Name:        po.CategoryName,
			Description: po.CategoryDescription,
		},
		Tags:        idsFromJSON(po.TagIDs),
		Retired:     po.Retired,
		CreatedOn:   po.CreatedOn,
		LastUpdated: po.LastUpdated,
	})
}
