/*
Package product Product aggregate

A product caches a snapshot of its category (id, name, description) and the
IDs of its tags. Both are the product-side halves of associations whose other
halves live on Category and Tag documents; the association maintainer keeps
the two halves in step.

Once retired a product keeps its tag set, but its category and tags can no
longer be changed. Renaming and repricing stay allowed.
*/
package product

import (
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

const EntityName = "product"

// CategorySnapshot Value object: a copy of the category fields the product displays.
// The zero value means "no category".
type CategorySnapshot struct {
	ID          int64
	Name        string
	Description string
}

// IsZero reports whether the product has no category.
func (s CategorySnapshot) IsZero() bool { return s.ID == 0 }

// Product aggregate root
type Product struct {
	id          int64
	name        string
	description string
	price       decimal.Decimal
	category    CategorySnapshot
	tags        shared.IDSet
	retired     bool
	createdOn   time.Time
	lastUpdated time.Time

	events []shared.DomainEvent
}

// NewProduct Create new Product aggregate root without category or tags.
func NewProduct(id int64, name, description string, price decimal.Decimal) (*Product, error) {
	if !shared.ValidIdentity(id) {
		return nil, shared.NewInvalidIdentityError(EntityName, id)
	}
	if err := validateText(name, description); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Product{
		id:          id,
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		price:       price,
		tags:        shared.NewIDSet(),
		createdOn:   now,
		lastUpdated: now,
	}
	p.recordEvent(NewCreatedEvent(p.id, p.name))
	return p, nil
}

func validateText(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewEmptyValueError(EntityName, "name")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewEmptyValueError(EntityName, "description")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError(EntityName, "price", "price must not be negative")
	}
	return nil
}

// ============================================================================
// ReconstructionDTO - For Repository Layer Use Only
// ============================================================================

type ReconstructionDTO struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Category    CategorySnapshot
	Tags        []int64
	Retired     bool
	CreatedOn   time.Time
	LastUpdated time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		category:    dto.Category,
		tags:        shared.NewIDSet(dto.Tags...),
		retired:     dto.Retired,
		createdOn:   dto.CreatedOn,
		lastUpdated: dto.LastUpdated,
	}
}

func (p *Product) Snapshot() ReconstructionDTO {
	return ReconstructionDTO{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		Price:       p.price,
		Category:    p.category,
		Tags:        p.tags.Slice(),
		Retired:     p.retired,
		CreatedOn:   p.createdOn,
		LastUpdated: p.lastUpdated,
	}
}

// ============================================================================
// Behavior
// ============================================================================

// Rename is allowed on retired products.
func (p *Product) Rename(name, description string) error {
	if err := validateText(name, description); err != nil {
		return err
	}
	p.name = strings.TrimSpace(name)
	p.description = strings.TrimSpace(description)
	p.touch()
	return nil
}

// ChangePrice is allowed on retired products.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	if !p.price.Equal(price) {
		p.price = price
		p.touch()
	}
	return nil
}

// AssignCategory replaces the category snapshot. The same call refreshes a
// stale snapshot when the category id is unchanged.
func (p *Product) AssignCategory(snapshot CategorySnapshot) error {
	if p.retired {
		return shared.NewRetiredEntityError(EntityName, p.id)
	}
	if !shared.ValidIdentity(snapshot.ID) {
		return shared.NewInvalidIdentityError("category", snapshot.ID)
	}
	if p.category != snapshot {
		p.category = snapshot
		p.touch()
	}
	return nil
}

// ClearCategory detaches the product from its category.
func (p *Product) ClearCategory() error {
	if p.retired {
		return shared.NewRetiredEntityError(EntityName, p.id)
	}
	if !p.category.IsZero() {
		p.category = CategorySnapshot{}
		p.touch()
	}
	return nil
}

func (p *Product) AddTag(tagID int64) error {
	if p.retired {
		return shared.NewRetiredEntityError(EntityName, p.id)
	}
	if p.tags.Add(tagID) {
		p.touch()
	}
	return nil
}

func (p *Product) RemoveTag(tagID int64) error {
	if p.retired {
		return shared.NewRetiredEntityError(EntityName, p.id)
	}
	if p.tags.Remove(tagID) {
		p.touch()
	}
	return nil
}

// Retire marks the product retired. Detaching it from categories is done by
// the caller before this call; tags are kept.
func (p *Product) Retire() error {
	if p.retired {
		return shared.NewAlreadyRetiredError(EntityName, p.id)
	}
	p.retired = true
	p.touch()
	p.recordEvent(NewRetiredEvent(p.id))
	return nil
}

// Unretire flips the flag back. Nothing is re-attached.
func (p *Product) Unretire() error {
	if !p.retired {
		return shared.NewNotRetiredError(EntityName, p.id)
	}
	p.retired = false
	p.touch()
	p.recordEvent(NewUnretiredEvent(p.id))
	return nil
}

func (p *Product) touch() {
	p.lastUpdated = time.Now()
}

// ============================================================================
// Getters
// ============================================================================

func (p *Product) ID() int64                  { return p.id }
func (p *Product) Name() string               { return p.name }
func (p *Product) Description() string        { return p.description }
func (p *Product) Price() decimal.Decimal     { return p.price }
func (p *Product) Category() CategorySnapshot { return p.category }
func (p *Product) HasCategory() bool          { return !p.category.IsZero() }
func (p *Product) Tags() []int64              { return p.tags.Slice() }
func (p *Product) TagSet() shared.IDSet       { return p.tags.Clone() }
func (p *Product) HasTag(tagID int64) bool    { return p.tags.Contains(tagID) }
func (p *Product) Retired() bool              { return p.retired }
func (p *Product) CreatedOn() time.Time       { return p.createdOn }
func (p *Product) LastUpdated() time.Time     { return p.lastUpdated }

func (p *Product) PullEvents() []shared.DomainEvent {
	events := p.events
	p.events = nil
	return events
}

func (p *Product) recordEvent(event shared.DomainEvent) {
	p.events = append(p.events, event)
}

var _ shared.AggregateRoot = (*Product)(nil)
