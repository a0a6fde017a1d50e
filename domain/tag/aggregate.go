// Package tag Tag aggregate. Same association model as category, plus unretire.
package tag

import (
	"strings"
	"time"

	"storefront/domain/shared"
)

const EntityName = "tag"

// Tag aggregate root
type Tag struct {
	id          int64
	name        string
	description string
	createdOn   time.Time
	lastUpdated time.Time
	products    shared.IDSet
	retired     bool

	events []shared.DomainEvent
}

func NewTag(id int64, name, description string) (*Tag, error) {
	if !shared.ValidIdentity(id) {
		return nil, shared.NewInvalidIdentityError(EntityName, id)
	}
	if err := validateText(name, description); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &Tag{
		id:          id,
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		createdOn:   now,
		lastUpdated: now,
		products:    shared.NewIDSet(),
	}
	t.recordEvent(NewCreatedEvent(t.id, t.name))
	return t, nil
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

// ReconstructionDTO is for repository implementations only.
type ReconstructionDTO struct {
	ID          int64
	Name        string
	Description string
	CreatedOn   time.Time
	LastUpdated time.Time
	Products    []int64
	Retired     bool
}

func RebuildFromDTO(dto ReconstructionDTO) *Tag {
	return &Tag{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		createdOn:   dto.CreatedOn,
		lastUpdated: dto.LastUpdated,
		products:    shared.NewIDSet(dto.Products...),
		retired:     dto.Retired,
	}
}

func (t *Tag) Snapshot() ReconstructionDTO {
	return ReconstructionDTO{
		ID:          t.id,
		Name:        t.name,
		Description: t.description,
		CreatedOn:   t.createdOn,
		LastUpdated: t.lastUpdated,
		Products:    t.products.Slice(),
		Retired:     t.retired,
	}
}

func (t *Tag) Rename(name, description string) error {
	if t.retired {
		return shared.NewRetiredEntityError(EntityName, t.id)
	}
	if err := validateText(name, description); err != nil {
		return err
	}
	t.name = strings.TrimSpace(name)
	t.description = strings.TrimSpace(description)
	t.touch()
	return nil
}

func (t *Tag) AddProduct(productID int64) error {
	if t.retired {
		return shared.NewRetiredEntityError(EntityName, t.id)
	}
	if t.products.Add(productID) {
		t.touch()
	}
	return nil
}

func (t *Tag) RemoveProduct(productID int64) error {
	if t.retired {
		return shared.NewRetiredEntityError(EntityName, t.id)
	}
	if t.products.Remove(productID) {
		t.touch()
	}
	return nil
}

func (t *Tag) Retire() error {
	if t.retired {
		return shared.NewAlreadyRetiredError(EntityName, t.id)
	}
	if !t.products.IsEmpty() {
		return shared.NewHasActiveAssociationsError(EntityName, t.id, t.products.Slice())
	}
	t.retired = true
	t.touch()
	t.recordEvent(NewRetiredEvent(t.id))
	return nil
}

func (t *Tag) Unretire() error {
	if !t.retired {
		return shared.NewNotRetiredError(EntityName, t.id)
	}
	t.retired = false
	t.touch()
	t.recordEvent(NewUnretiredEvent(t.id))
	return nil
}

func (t *Tag) touch() {
	t.lastUpdated = time.Now()
}

func (t *Tag) ID() int64                       { return t.id }
func (t *Tag) Name() string                    { return t.name }
func (t *Tag) Description() string             { return t.description }
func (t *Tag) CreatedOn() time.Time            { return t.createdOn }
func (t *Tag) LastUpdated() time.Time          { return t.lastUpdated }
func (t *Tag) Retired() bool                   { return t.retired }
func (t *Tag) Products() []int64               { return t.products.Slice() }
func (t *Tag) ProductSet() shared.IDSet        { return t.products.Clone() }
func (t *Tag) HasProduct(productID int64) bool { return t.products.Contains(productID) }

func (t *Tag) PullEvents() []shared.DomainEvent {
	events := t.events
	t.events = nil
	return events
}

func (t *Tag) recordEvent(event shared.DomainEvent) {
	t.events = append(t.events, event)
}

var _ shared.AggregateRoot = (*Tag)(nil)
