/*
Package category Category aggregate

A Category groups products. The association is stored on both sides as
plain ID sets: the category keeps the IDs of its products and every product
keeps a snapshot of its category. Only the association maintainer in
domain/catalog edits both sides together; code elsewhere must not call
AddProduct/RemoveProduct directly.

Lifecycle: active → retired. Categories cannot be unretired.
*/
package category

import (
	"strings"
	"time"

	"storefront/domain/shared"
)

// EntityName is used in error messages and event names.
const EntityName = "category"

// Category aggregate root
type Category struct {
	id          int64
	name        string
	description string
	createdOn   time.Time
	lastUpdated time.Time
	products    shared.IDSet
	retired     bool

	events []shared.DomainEvent
}

// NewCategory Create new Category aggregate root
// id comes from Repository.NextIdentity
func NewCategory(id int64, name, description string) (*Category, error) {
	if !shared.ValidIdentity(id) {
		return nil, shared.NewInvalidIdentityError(EntityName, id)
	}
	if err := validateText(name, description); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Category{
		id:          id,
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		createdOn:   now,
		lastUpdated: now,
		products:    shared.NewIDSet(),
	}
	c.recordEvent(NewCreatedEvent(c.id, c.name))
	return c, nil
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

// ============================================================================
// ReconstructionDTO - For Repository Layer Use Only
// ============================================================================

// ReconstructionDTO Category reconstruction data transfer object
// Limited to repository layer usage; bypasses creation guards.
type ReconstructionDTO struct {
	ID          int64
	Name        string
	Description string
	CreatedOn   time.Time
	LastUpdated time.Time
	Products    []int64
	Retired     bool
}

// RebuildFromDTO Reconstruct Category aggregate root from DTO
func RebuildFromDTO(dto ReconstructionDTO) *Category {
	return &Category{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		createdOn:   dto.CreatedOn,
		lastUpdated: dto.LastUpdated,
		products:    shared.NewIDSet(dto.Products...),
		retired:     dto.Retired,
	}
}

// Snapshot returns the persistent state of the aggregate.
func (c *Category) Snapshot() ReconstructionDTO {
	return ReconstructionDTO{
		ID:          c.id,
		Name:        c.name,
		Description: c.description,
		CreatedOn:   c.createdOn,
		LastUpdated: c.lastUpdated,
		Products:    c.products.Slice(),
		Retired:     c.retired,
	}
}

// ============================================================================
// Behavior
// ============================================================================

// Rename changes name and description.
func (c *Category) Rename(name, description string) error {
	if c.retired {
		return shared.NewRetiredEntityError(EntityName, c.id)
	}
	if err := validateText(name, description); err != nil {
		return err
	}
	c.name = strings.TrimSpace(name)
	c.description = strings.TrimSpace(description)
	c.touch()
	return nil
}

// AddProduct is idempotent; lastUpdated only moves when the set changes.
func (c *Category) AddProduct(productID int64) error {
	if c.retired {
		return shared.NewRetiredEntityError(EntityName, c.id)
	}
	if c.products.Add(productID) {
		c.touch()
	}
	return nil
}

// RemoveProduct is idempotent; removing an absent id is not an error.
func (c *Category) RemoveProduct(productID int64) error {
	if c.retired {
		return shared.NewRetiredEntityError(EntityName, c.id)
	}
	if c.products.Remove(productID) {
		c.touch()
	}
	return nil
}

// Retire Business rule: only an empty, active category can be retired.
func (c *Category) Retire() error {
	if c.retired {
		return shared.NewAlreadyRetiredError(EntityName, c.id)
	}
	if !c.products.IsEmpty() {
		return shared.NewHasActiveAssociationsError(EntityName, c.id, c.products.Slice())
	}
	c.retired = true
	c.touch()
	c.recordEvent(NewRetiredEvent(c.id))
	return nil
}

func (c *Category) touch() {
	c.lastUpdated = time.Now()
}

// ============================================================================
// Getters
// ============================================================================

func (c *Category) ID() int64              { return c.id }
func (c *Category) Name() string           { return c.name }
func (c *Category) Description() string    { return c.description }
func (c *Category) CreatedOn() time.Time   { return c.createdOn }
func (c *Category) LastUpdated() time.Time { return c.lastUpdated }
func (c *Category) Retired() bool          { return c.retired }

// Products returns the associated product IDs in ascending order.
func (c *Category) Products() []int64 { return c.products.Slice() }

// ProductSet returns a copy of the association set.
func (c *Category) ProductSet() shared.IDSet { return c.products.Clone() }

func (c *Category) HasProduct(productID int64) bool { return c.products.Contains(productID) }

// PullEvents Get and clear the recorded events
func (c *Category) PullEvents() []shared.DomainEvent {
	events := c.events
	c.events = nil
	return events
}

func (c *Category) recordEvent(event shared.DomainEvent) {
	c.events = append(c.events, event)
}

var _ shared.AggregateRoot = (*Category)(nil)
