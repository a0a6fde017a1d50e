/*
Package category Application Layer - Category business process orchestration

Every write runs through a fresh UnitOfWork. Operations that change product
associations also write product documents, so they bracket the categories and
products collections in one multi-collection transaction; the association
maintainer decides what changes and this service persists it.
*/
package category

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/domain/category"
	"storefront/domain/product"
	"storefront/domain/shared"

	"go.uber.org/zap"
)

// ApplicationService Category application service
type ApplicationService struct {
	categoryRepo category.Repository
	productRepo  product.Repository
	maintainer   *catalog.Maintainer
	uowFactory   shared.UnitOfWorkFactory
	logger       *zap.Logger
}

// NewApplicationService Create category application service
func NewApplicationService(
	categoryRepo category.Repository,
	productRepo product.Repository,
	maintainer *catalog.Maintainer,
	uowFactory shared.UnitOfWorkFactory,
	logger *zap.Logger,
) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		maintainer:   maintainer,
		uowFactory:   uowFactory,
		logger:       logger,
	}
}

// CreateCategory Create a category and attach the requested products
func (s *ApplicationService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var c *category.Category

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		id, err := s.categoryRepo.NextIdentity(ctx)
		if err != nil {
			return err
		}
		c, err = category.NewCategory(id, req.Name, req.Description)
		if err != nil {
			return err
		}
		if err := shared.EnsureNameAvailable(ctx, category.EntityName, c.Name(), c.ID(), s.categoryRepo.FindByName); err != nil {
			return err
		}

		if len(req.Products) > 0 {
			res, err := s.maintainer.SyncCategoryProducts(ctx, c, shared.NewIDSet(req.Products...))
			if err != nil {
				return err
			}
			if err := s.persist(ctx, "create category", res); err != nil {
				return err
			}
		}

		if err := s.categoryRepo.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterNew(c)
		return nil
	}, s.categoryRepo, s.productRepo)
	if err != nil {
		return nil, shared.WrapOp("create category", err)
	}

	return toCategoryResponse(c), nil
}

// GetCategory returns nil when the category does not exist
func (s *ApplicationService) GetCategory(ctx context.Context, id int64) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get category", err)
	}
	return toCategoryResponse(c), nil
}

// GetCategoryByName returns nil when no category has that name
func (s *ApplicationService) GetCategoryByName(ctx context.Context, name string) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get category", err)
	}
	return toCategoryResponse(c), nil
}

// GetAllCategories lists categories; activeOnly drops retired ones
func (s *ApplicationService) GetAllCategories(ctx context.Context, activeOnly bool) ([]*CategoryResponse, error) {
	var (
		categories []*category.Category
		err        error
	)
	if activeOnly {
		categories, err = s.categoryRepo.FindBySpecification(ctx, category.NewActiveSpecification())
	} else {
		categories, err = s.categoryRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, shared.WrapOp("get categories", err)
	}
	return toCategoryResponses(categories), nil
}

// UpdateCategory Rename and/or re-sync the product set.
// A rename is copied into the snapshot held by every associated product.
func (s *ApplicationService) UpdateCategory(ctx context.Context, id int64, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var c *category.Category

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		name, description := c.Name(), c.Description()
		if req.Name != "" {
			name = req.Name
		}
		if req.Description != "" {
			description = req.Description
		}
		renamed := name != c.Name() || description != c.Description()
		if renamed {
			if err := c.Rename(name, description); err != nil {
				return err
			}
			if err := shared.EnsureNameAvailable(ctx, category.EntityName, c.Name(), c.ID(), s.categoryRepo.FindByName); err != nil {
				return err
			}
		}

		if req.Products != nil {
			res, err := s.maintainer.SyncCategoryProducts(ctx, c, shared.NewIDSet(req.Products...))
			if err != nil {
				return err
			}
			if err := s.persist(ctx, "update category", res); err != nil {
				return err
			}
		}

		// Runs after the sync so newly attached products are read back with
		// their fresh snapshot and skipped.
		if renamed {
			res, err := s.maintainer.RefreshCategorySnapshots(ctx, c)
			if err != nil {
				return err
			}
			if err := s.persist(ctx, "update category", res); err != nil {
				return err
			}
		}

		if err := s.categoryRepo.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	}, s.categoryRepo, s.productRepo)
	if err != nil {
		return nil, shared.WrapOp("update category", err)
	}

	return toCategoryResponse(c), nil
}

// RetireCategory fails while the category still has products.
// Categories cannot be unretired.
func (s *ApplicationService) RetireCategory(ctx context.Context, id int64) (*CategoryResponse, error) {
	var c *category.Category

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := c.Retire(); err != nil {
			return err
		}
		if err := s.categoryRepo.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, shared.WrapOp("retire category", err)
	}

	return toCategoryResponse(c), nil
}

// CountCategories is used by the seeder
func (s *ApplicationService) CountCategories(ctx context.Context) (int64, error) {
	n, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return 0, shared.WrapOp("count categories", err)
	}
	return n, nil
}

// persist saves what the maintainer touched besides the category itself
func (s *ApplicationService) persist(ctx context.Context, op string, res *catalog.SyncResult) error {
	if len(res.Missing) > 0 {
		s.logger.Warn("association targets missing, treated as detached",
			zap.String("op", op),
			zap.Int64s("product_ids", res.Missing),
		)
	}
	for _, other := range res.Categories {
		if err := s.categoryRepo.Save(ctx, other); err != nil {
			return err
		}
	}
	for _, p := range res.Products {
		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
