package po

import (
	"time"

	"storefront/domain/tag"

	"gorm.io/datatypes"
)

// TagPO Tag persistence object
// The product id set is kept as a JSON array on the tag row, mirroring
// the document shape. Defining GORM associations is prohibited here.
type TagPO struct {
	ID          int64          `gorm:"primaryKey;autoIncrement:false"`
	Name        string         `gorm:"size:255;uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	ProductIDs  datatypes.JSON `gorm:"column:product_ids;type:json"`
	Retired     bool           `gorm:"not null;default:false"`
	CreatedOn   time.Time      `gorm:"column:created_on;not null"`
	LastUpdated time.Time      `gorm:"column:last_updated;not null"`
}

func (TagPO) TableName() string {
	return "tags"
}

func FromTagDomain(t *tag.Tag) *TagPO {
	dto := t.Snapshot()
	return &TagPO{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		ProductIDs:  idsToJSON(dto.Products),
		Retired:     dto.Retired,
		CreatedOn:   dto.CreatedOn,
		LastUpdated: dto.LastUpdated,
	}
}

func (po *TagPO) ToDomain() *tag.Tag {
	return tag.RebuildFromDTO(tag.ReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Products:    idsFromJSON(po.ProductIDs),
		Retired:     po.Retired,
		CreatedOn:   po.CreatedOn,
		LastUpdated: po.LastUpdated,
	})
}
