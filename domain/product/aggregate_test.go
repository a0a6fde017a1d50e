package product

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

func newFish(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(10, "Fish", "Atlantic cod", decimal.RequireFromString("5.99"))
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func TestNewProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		price   string
		pname   string
		wantErr error
	}{
		{"valid", 1, "5.99", "Fish", nil},
		{"free", 1, "0", "Fish", nil},
		{"negative price", 1, "-0.01", "Fish", shared.ErrInvalidInput},
		{"zero id", 0, "1", "Fish", shared.ErrInvalidIdentity},
		{"blank name", 1, "1", "", shared.ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.id, tt.pname, "desc", decimal.RequireFromString(tt.price))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewProduct() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetiredProductKeepsAssociations(t *testing.T) {
	p := newFish(t)
	_ = p.AssignCategory(CategorySnapshot{ID: 1, Name: "Seafood", Description: "sea"})
	_ = p.AddTag(3)
	if err := p.Retire(); err != nil {
		t.Fatal(err)
	}

	before := p.Snapshot()
	checks := map[string]error{
		"AddTag":         p.AddTag(4),
		"RemoveTag":      p.RemoveTag(3),
		"AssignCategory": p.AssignCategory(CategorySnapshot{ID: 2, Name: "x", Description: "y"}),
		"ClearCategory":  p.ClearCategory(),
	}
	for op, err := range checks {
		if !errors.Is(err, shared.ErrRetiredEntity) {
			t.Errorf("%s error = %v, want RetiredEntity", op, err)
		}
	}

	if !reflect.DeepEqual(p.Tags(), before.Tags) || p.Category() != before.Category {
		t.Fatalf("associations changed: tags=%v category=%+v", p.Tags(), p.Category())
	}
}

func TestRetiredProductAllowsRenameAndPrice(t *testing.T) {
	p := newFish(t)
	_ = p.Retire()

	if err := p.Rename("Cod", "desc"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if err := p.ChangePrice(decimal.NewFromInt(7)); err != nil {
		t.Fatalf("ChangePrice() error = %v", err)
	}
	if err := p.ChangePrice(decimal.NewFromInt(-1)); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("ChangePrice(-1) error = %v", err)
	}
	if !p.Price().Equal(decimal.NewFromInt(7)) {
		t.Fatalf("price = %s", p.Price())
	}
}

func TestProductRetireUnretire(t *testing.T) {
	p := newFish(t)
	if err := p.Unretire(); !errors.Is(err, shared.ErrNotRetired) {
		t.Fatalf("Unretire() error = %v", err)
	}
	_ = p.Retire()
	if err := p.Retire(); !errors.Is(err, shared.ErrAlreadyRetired) {
		t.Fatalf("Retire() twice error = %v", err)
	}
	if err := p.Unretire(); err != nil {
		t.Fatal(err)
	}
	if err := p.AddTag(9); err != nil {
		t.Fatalf("AddTag() after Unretire: %v", err)
	}
}

func TestClearCategory(t *testing.T) {
	p := newFish(t)
	_ = p.AssignCategory(CategorySnapshot{ID: 1, Name: "Seafood", Description: "sea"})
	if !p.HasCategory() {
		t.Fatal("expected category")
	}
	_ = p.ClearCategory()
	if p.HasCategory() {
		t.Fatal("expected no category")
	}
}

func TestSpecifications(t *testing.T) {
	p := newFish(t)
	_ = p.AssignCategory(CategorySnapshot{ID: 1, Name: "Seafood", Description: "sea"})
	_ = p.AddTag(2)

	spec := shared.And(NewByCategorySpecification(1), NewHasTagSpecification(2))
	if !spec.IsSatisfiedBy(context.Background(), p) {
		t.Error("expected category+tag spec to match")
	}
	cheap := NewByPriceRangeSpecification(decimal.Zero, decimal.NewFromInt(5))
	if cheap.IsSatisfiedBy(context.Background(), p) {
		t.Error("5.99 should not be within [0,5]")
	}
}
