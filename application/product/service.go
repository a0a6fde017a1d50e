/*
Package product Application Layer - Product business process orchestration

A product sits on the "many" side of both associations, so creating or
updating one may rewrite category and tag documents as well. Those writes
share a single products+categories+tags transaction.

Retiring a product detaches it from its category first. Tags are kept on
purpose, and unretiring never re-attaches the category.
*/
package product

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/domain/category"
	"storefront/domain/product"
	"storefront/domain/shared"
	"storefront/domain/tag"

	"go.uber.org/zap"
)

// ApplicationService Product application service
type ApplicationService struct {
	productRepo  product.Repository
	categoryRepo category.Repository
	tagRepo      tag.Repository
	maintainer   *catalog.Maintainer
	uowFactory   shared.UnitOfWorkFactory
	logger       *zap.Logger
}

// NewApplicationService Create product application service
func NewApplicationService(
	productRepo product.Repository,
	categoryRepo category.Repository,
	tagRepo tag.Repository,
	maintainer *catalog.Maintainer,
	uowFactory shared.UnitOfWorkFactory,
	logger *zap.Logger,
) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		maintainer:   maintainer,
		uowFactory:   uowFactory,
		logger:       logger,
	}
}

// CreateProduct Create product, attaching it to the category and tags given
func (s *ApplicationService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var p *product.Product

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		id, err := s.productRepo.NextIdentity(ctx)
		if err != nil {
			return err
		}
		p, err = product.NewProduct(id, req.Name, req.Description, req.Price)
		if err != nil {
			return err
		}
		if err := shared.EnsureNameAvailable(ctx, product.EntityName, p.Name(), p.ID(), s.productRepo.FindByName); err != nil {
			return err
		}

		if req.CategoryID != 0 {
			res, err := s.maintainer.AssignProductCategory(ctx, p, req.CategoryID)
			if err != nil {
				return err
			}
			if err := s.persist(ctx, "create product", res); err != nil {
				return err
			}
		}
		if len(req.TagIDs) > 0 {
			res, err := s.maintainer.SyncProductTags(ctx, p, shared.NewIDSet(req.TagIDs...))
			if err != nil {
				return err
			}
			if err := s.persist(ctx, "create product", res); err != nil {
				return err
			}
		}

		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterNew(p)
		return nil
	}, s.productRepo, s.categoryRepo, s.tagRepo)
	if err != nil {
		return nil, shared.WrapOp("create product", err)
	}

	return toProductResponse(p), nil
}

// GetProduct returns nil when the product does not exist
func (s *ApplicationService) GetProduct(ctx context.Context, id int64) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get product", err)
	}
	return toProductResponse(p), nil
}

func (s *ApplicationService) GetProductByName(ctx context.Context, name string) (*ProductResponse, error) {
	p, err := s.productRepo.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get product", err)
	}
	return toProductResponse(p), nil
}

// GetAllProducts Query products with specification composition
func (s *ApplicationService) GetAllProducts(ctx context.Context, q ProductQuery) ([]*ProductResponse, error) {
	var spec shared.Specification[*product.Product]
	and := func(next shared.Specification[*product.Product]) {
		if spec == nil {
			spec = next
			return
		}
		spec = shared.And(spec, next)
	}
	if q.CategoryID != 0 {
		and(product.NewByCategorySpecification(q.CategoryID))
	}
	if q.TagID != 0 {
		and(product.NewHasTagSpecification(q.TagID))
	}
	if !q.MinPrice.IsZero() || !q.MaxPrice.IsZero() {
		and(product.NewByPriceRangeSpecification(q.MinPrice, q.MaxPrice))
	}
	if q.ActiveOnly {
		and(product.NewActiveSpecification())
	}

	var (
		products []*product.Product
		err      error
	)
	if spec == nil {
		products, err = s.productRepo.FindAll(ctx)
	} else {
		products, err = s.productRepo.FindBySpecification(ctx, spec)
	}
	if err != nil {
		return nil, shared.WrapOp("get products", err)
	}
	return toProductResponses(products), nil
}

// UpdateProduct Change name, price, category and/or tags
func (s *ApplicationService) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	var p *product.Product

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		name, description := p.Name(), p.Description()
		if req.Name != "" {
			name = req.Name
		}
		if req.Description != "" {
			description = req.Description
		}
		if name != p.Name() || description != p.Description() {
			if err := p.Rename(name, description); err != nil {
				return err
			}
			if err := shared.EnsureNameAvailable(ctx, product.EntityName, p.Name(), p.ID(), s.productRepo.FindByName); err != nil {
				return err
			}
		}
		if req.Price != nil && !req.Price.Equal(p.Price()) {
			if err := p.ChangePrice(*req.Price); err != nil {
				return err
			}
		}

		if req.CategoryID != nil {
			res, err := s.maintainer.AssignProductCategory(ctx, p, *req.CategoryID)
			if err != nil {
				return err
			}
			if err := s.persist(ctx, "update product", res); err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			res, err := s.maintainer.SyncProductTags(ctx, p, shared.NewIDSet(req.TagIDs...))
			if err != nil {
				return err
			}
			if err := s.persist(ctx, "update product", res); err != nil {
				return err
			}
		}

		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterDirty(p)
		return nil
	}, s.productRepo, s.categoryRepo, s.tagRepo)
	if err != nil {
		return nil, shared.WrapOp("update product", err)
	}

	return toProductResponse(p), nil
}

// RetireProduct Remove the product from every category referencing it, then retire it.
// The product keeps its tags.
func (s *ApplicationService) RetireProduct(ctx context.Context, id int64) (*ProductResponse, error) {
	var p *product.Product

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		res, err := s.maintainer.DetachRetiringProduct(ctx, p)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, "retire product", res); err != nil {
			return err
		}

		if err := p.Retire(); err != nil {
			return err
		}
		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterDirty(p)
		return nil
	}, s.categoryRepo, s.productRepo)
	if err != nil {
		return nil, shared.WrapOp("retire product", err)
	}

	return toProductResponse(p), nil
}

// UnretireProduct only flips the flag; no category is re-attached
func (s *ApplicationService) UnretireProduct(ctx context.Context, id int64) (*ProductResponse, error) {
	var p *product.Product

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Unretire(); err != nil {
			return err
		}
		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterDirty(p)
		return nil
	})
	if err != nil {
		return nil, shared.WrapOp("unretire product", err)
	}

	return toProductResponse(p), nil
}

func (s *ApplicationService) persist(ctx context.Context, op string, res *catalog.SyncResult) error {
	if len(res.Missing) > 0 {
		s.logger.Warn("association targets missing, treated as detached",
			zap.String("op", op),
			zap.Int64s("ids", res.Missing),
		)
	}
	for _, c := range res.Categories {
		if err := s.categoryRepo.Save(ctx, c); err != nil {
			return err
		}
	}
	for _, t := range res.Tags {
		if err := s.tagRepo.Save(ctx, t); err != nil {
			return err
		}
	}
	for _, other := range res.Products {
		if err := s.productRepo.Save(ctx, other); err != nil {
			return err
		}
	}
	return nil
}
