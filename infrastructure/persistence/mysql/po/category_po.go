package po

import (
	"time"

	"storefront/domain/category"

	"gorm.io/datatypes"
)

// CategoryPO Category persistence object
// The product id set is kept as a JSON array on the category row, mirroring
// the document shape. Defining GORM associations is prohibited here.
type CategoryPO struct {
	ID          int64          `gorm:"primaryKey;autoIncrement:false"`
	Name        string         `gorm:"size:255;uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	ProductIDs  datatypes.JSON `gorm:"column:product_ids;type:json"`
	Retired     bool           `gorm:"not null;default:false"`
	CreatedOn   time.Time      `gorm:"column:created_on;not null"`
	LastUpdated time.Time      `gorm:"column:last_updated;not null"`
}

func (CategoryPO) TableName() string {
	return "categories"
}

func FromCategoryDomain(c *category.Category) *CategoryPO {
	dto := c.Snapshot()
	return &CategoryPO{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		ProductIDs:  idsToJSON(dto.Products),
		Retired:     dto.Retired,
		CreatedOn:   dto.CreatedOn,
		LastUpdated: dto.LastUpdated,
	}
}

func (po *CategoryPO) ToDomain() *category.Category {
	return category.RebuildFromDTO(category.ReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Products:    idsFromJSON(po.ProductIDs),
		Retired:     po.Retired,
		CreatedOn:   po.CreatedOn,
		LastUpdated: po.LastUpdated,
	})
}
