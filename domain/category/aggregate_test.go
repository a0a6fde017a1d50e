package category

import (
	"errors"
	"reflect"
	"testing"

	"storefront/domain/shared"
)

func newTestCategory(t *testing.T) *Category {
	t.Helper()
	c, err := NewCategory(1, "Seafood", "Fresh from the sea")
	if err != nil {
		t.Fatalf("NewCategory: %v", err)
	}
	return c
}

func TestNewCategoryValidation(t *testing.T) {
	tests := []struct {
		name        string
		id          int64
		catName     string
		description string
		wantErr     error
	}{
		{"valid", 1, "Seafood", "desc", nil},
		{"zero id", 0, "Seafood", "desc", shared.ErrInvalidIdentity},
		{"blank name", 1, "  ", "desc", shared.ErrEmptyValue},
		{"blank description", 1, "Seafood", "", shared.ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCategory(tt.id, tt.catName, tt.description)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewCategory() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (c.Retired() || len(c.Products()) != 0) {
				t.Fatalf("new category should be active and empty")
			}
		})
	}
}

func TestRetireRequiresEmptyProductSet(t *testing.T) {
	c := newTestCategory(t)
	_ = c.AddProduct(7)
	_ = c.AddProduct(3)

	err := c.Retire()
	if !errors.Is(err, shared.ErrHasActiveAssociations) {
		t.Fatalf("Retire() error = %v, want HasActiveAssociations", err)
	}
	if got := shared.IDsOf(err); !reflect.DeepEqual(got, []int64{3, 7}) {
		t.Fatalf("error ids = %v, want [3 7]", got)
	}
	if c.Retired() {
		t.Fatal("category must stay active after failed retire")
	}

	_ = c.RemoveProduct(3)
	_ = c.RemoveProduct(7)
	if err := c.Retire(); err != nil {
		t.Fatalf("Retire() on empty category: %v", err)
	}
	if err := c.Retire(); !errors.Is(err, shared.ErrAlreadyRetired) {
		t.Fatalf("second Retire() error = %v, want AlreadyRetired", err)
	}
}

func TestRetiredCategoryRejectsMutation(t *testing.T) {
	c := newTestCategory(t)
	if err := c.Retire(); err != nil {
		t.Fatal(err)
	}

	if err := c.AddProduct(1); !errors.Is(err, shared.ErrRetiredEntity) {
		t.Errorf("AddProduct() error = %v", err)
	}
	if err := c.RemoveProduct(1); !errors.Is(err, shared.ErrRetiredEntity) {
		t.Errorf("RemoveProduct() error = %v", err)
	}
	if err := c.Rename("x", "y"); !errors.Is(err, shared.ErrRetiredEntity) {
		t.Errorf("Rename() error = %v", err)
	}
	if len(c.Products()) != 0 {
		t.Errorf("products changed on retired category: %v", c.Products())
	}
}

func TestRemoveProductIsIdempotent(t *testing.T) {
	c := newTestCategory(t)
	_ = c.AddProduct(5)

	if err := c.RemoveProduct(5); err != nil {
		t.Fatal(err)
	}
	before := c.LastUpdated()
	if err := c.RemoveProduct(5); err != nil {
		t.Fatalf("second RemoveProduct() error = %v", err)
	}
	if !c.LastUpdated().Equal(before) {
		t.Error("lastUpdated moved without a change")
	}
	if len(c.Products()) != 0 {
		t.Errorf("products = %v, want empty", c.Products())
	}
}

func TestRenameRejectsBlank(t *testing.T) {
	c := newTestCategory(t)
	if err := c.Rename("", "desc"); !errors.Is(err, shared.ErrEmptyValue) {
		t.Fatalf("Rename() error = %v", err)
	}
	if c.Name() != "Seafood" {
		t.Fatalf("name changed to %q", c.Name())
	}
}

func TestRebuildRoundTrip(t *testing.T) {
	c := newTestCategory(t)
	_ = c.AddProduct(2)
	dto := c.Snapshot()

	rebuilt := RebuildFromDTO(dto)
	if !reflect.DeepEqual(rebuilt.Snapshot(), dto) {
		t.Fatalf("rebuilt snapshot differs: %+v vs %+v", rebuilt.Snapshot(), dto)
	}
	if len(rebuilt.PullEvents()) != 0 {
		t.Fatal("rebuilt aggregate must not carry events")
	}
}

func TestPullEventsClears(t *testing.T) {
	c := newTestCategory(t)
	_ = c.Retire()

	events := c.PullEvents()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].EventName() != "category.retired" {
		t.Errorf("event = %s", events[1].EventName())
	}
	if len(c.PullEvents()) != 0 {
		t.Error("PullEvents should clear")
	}
}
