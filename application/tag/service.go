package tag

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/domain/product"
	"storefront/domain/shared"
	"storefront/domain/tag"

	"go.uber.org/zap"
)

// ApplicationService Tag application service
type ApplicationService struct {
	tagRepo     tag.Repository
	productRepo product.Repository
	maintainer  *catalog.Maintainer
	uowFactory  shared.UnitOfWorkFactory
	logger      *zap.Logger
}

// NewApplicationService Create tag application service
func NewApplicationService(
	tagRepo tag.Repository,
	productRepo product.Repository,
	maintainer *catalog.Maintainer,
	uowFactory shared.UnitOfWorkFactory,
	logger *zap.Logger,
) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		tagRepo:     tagRepo,
		productRepo: productRepo,
		maintainer:  maintainer,
		uowFactory:  uowFactory,
		logger:      logger,
	}
}

// CreateTag Create tag and associate it with the requested products
// The tag and its products are written in one tags+products transaction
func (s *ApplicationService) CreateTag(ctx context.Context, req CreateTagRequest) (*TagResponse, error) {
	var t *tag.Tag

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		id, err := s.tagRepo.NextIdentity(ctx)
		if err != nil {
			return err
		}
		t, err = tag.NewTag(id, req.Name, req.Description)
		if err != nil {
			return err
		}
		if err := shared.EnsureNameAvailable(ctx, tag.EntityName, t.Name(), t.ID(), s.tagRepo.FindByName); err != nil {
			return err
		}

		if len(req.Products) > 0 {
			if err := s.syncProducts(ctx, "create tag", t, req.Products); err != nil {
				return err
			}
		}

		if err := s.tagRepo.Save(ctx, t); err != nil {
			return err
		}
		uow.RegisterNew(t)
		return nil
	}, s.tagRepo, s.productRepo)
	if err != nil {
		return nil, shared.WrapOp("create tag", err)
	}

	return toTagResponse(t), nil
}

// GetTag returns nil when the tag does not exist
func (s *ApplicationService) GetTag(ctx context.Context, id int64) (*TagResponse, error) {
	t, err := s.tagRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get tag", err)
	}
	return toTagResponse(t), nil
}

func (s *ApplicationService) GetTagByName(ctx context.Context, name string) (*TagResponse, error) {
	t, err := s.tagRepo.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get tag", err)
	}
	return toTagResponse(t), nil
}

func (s *ApplicationService) GetAllTags(ctx context.Context, activeOnly bool) ([]*TagResponse, error) {
	var (
		tags []*tag.Tag
		err  error
	)
	if activeOnly {
		tags, err = s.tagRepo.FindBySpecification(ctx, tag.NewActiveSpecification())
	} else {
		tags, err = s.tagRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, shared.WrapOp("get tags", err)
	}
	return toTagResponses(tags), nil
}

// UpdateTag Rename and/or re-sync the product set
func (s *ApplicationService) UpdateTag(ctx context.Context, id int64, req UpdateTagRequest) (*TagResponse, error) {
	var t *tag.Tag

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.tagRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		name, description := t.Name(), t.Description()
		if req.Name != "" {
			name = req.Name
		}
		if req.Description != "" {
			description = req.Description
		}
		if name != t.Name() || description != t.Description() {
			if err := t.Rename(name, description); err != nil {
				return err
			}
			if err := shared.EnsureNameAvailable(ctx, tag.EntityName, t.Name(), t.ID(), s.tagRepo.FindByName); err != nil {
				return err
			}
		}

		if req.Products != nil {
			if err := s.syncProducts(ctx, "update tag", t, req.Products); err != nil {
				return err
			}
		}

		if err := s.tagRepo.Save(ctx, t); err != nil {
			return err
		}
		uow.RegisterDirty(t)
		return nil
	}, s.tagRepo, s.productRepo)
	if err != nil {
		return nil, shared.WrapOp("update tag", err)
	}

	return toTagResponse(t), nil
}

// RetireTag fails while products are still tagged
func (s *ApplicationService) RetireTag(ctx context.Context, id int64) (*TagResponse, error) {
	return s.transition(ctx, "retire tag", id, (*tag.Tag).Retire)
}

// UnretireTag Reactivate a retired tag
func (s *ApplicationService) UnretireTag(ctx context.Context, id int64) (*TagResponse, error) {
	return s.transition(ctx, "unretire tag", id, (*tag.Tag).Unretire)
}

// transition applies a single-document lifecycle change
func (s *ApplicationService) transition(ctx context.Context, op string, id int64, apply func(*tag.Tag) error) (*TagResponse, error) {
	var t *tag.Tag

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.tagRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(t); err != nil {
			return err
		}
		if err := s.tagRepo.Save(ctx, t); err != nil {
			return err
		}
		uow.RegisterDirty(t)
		return nil
	})
	if err != nil {
		return nil, shared.WrapOp(op, err)
	}

	return toTagResponse(t), nil
}

func (s *ApplicationService) syncProducts(ctx context.Context, op string, t *tag.Tag, productIDs []int64) error {
	res, err := s.maintainer.SyncTagProducts(ctx, t, shared.NewIDSet(productIDs...))
	if err != nil {
		return err
	}
	if len(res.Missing) > 0 {
		s.logger.Warn("association targets missing, treated as detached",
			zap.String("op", op),
			zap.Int64("tag_id", t.ID()),
			zap.Int64s("product_ids", res.Missing),
		)
	}
	for _, p := range res.Products {
		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
