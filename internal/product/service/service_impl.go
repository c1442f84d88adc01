package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pantryworks/pantry/internal/product/domain"
	tagdomain "github.com/pantryworks/pantry/internal/tag/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ean13Pattern       = regexp.MustCompile(`^[0-9]{13}$`)
	productCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	TagRepo tagdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	tagRepo tagdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("product.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		tagRepo: p.TagRepo,
	}
}

// identity validates and resolves the ean13/product_code pair. Exactly one
// must be set; a product_code must already be uppercase.
func identity(ean13, productCode string) (*string, *string, error) {
	ean13 = strings.TrimSpace(ean13)
	productCode = strings.TrimSpace(productCode)

	switch {
	case ean13 != "" && productCode != "":
		return nil, nil, domain.ErrAmbiguousIdentifier
	case ean13 == "" && productCode == "":
		return nil, nil, domain.ErrMissingIdentifier
	case ean13 != "":
		if !ean13Pattern.MatchString(ean13) {
			return nil, nil, domain.ErrInvalidEAN13
		}
		return &ean13, nil, nil
	default:
		if !productCodePattern.MatchString(productCode) {
			return nil, nil, domain.ErrInvalidProductCode
		}
		return nil, &productCode, nil
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	ean13, productCode, err := identity(req.EAN13, req.ProductCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		EAN13:       ean13,
		ProductCode: productCode,
		Name:        name,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, p); err != nil {
			return err
		}
		return s.AttachTags(ctx, tx, p.ID, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(p, tagdomain.SplitList(req.Tags))
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	ean13, productCode, err := identity(req.EAN13, req.ProductCode)
	if err != nil {
		return nil, err
	}

	var p *domain.Product
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, productID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		item.EAN13 = ean13
		item.ProductCode = productCode
		item.Name = name
		item.ImageURL = strings.TrimSpace(req.ImageURL)
		item.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, tx, item); err != nil {
			return err
		}

		// Full replacement of the tag set.
		if err := s.repo.DeleteTagLinks(ctx, tx, item.ID); err != nil {
			return err
		}
		if err := s.AttachTags(ctx, tx, item.ID, req.Tags); err != nil {
			return err
		}

		p = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(p, tagdomain.SplitList(req.Tags))
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	tags, err := s.repo.FindTagNames(ctx, s.db, item.ID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(item, tags)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	links, err := s.repo.FindAllTagLinks(ctx, s.db)
	if err != nil {
		return nil, err
	}
	tagsByProduct := make(map[int64][]string, len(items))
	for _, link := range links {
		tagsByProduct[link.ProductID] = append(tagsByProduct[link.ProductID], link.Name)
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(&item, tagsByProduct[item.ID]))
	}
	return resp, nil
}

func (s *Service) AttachTags(ctx context.Context, tx *gorm.DB, productID int64, tagList string) error {
	for _, name := range tagdomain.SplitList(tagList) {
		t, err := s.tagRepo.FindByName(ctx, tx, name)
		if err != nil {
			return err
		}
		if t == nil {
			t = &tagdomain.Tag{
				ID:   s.genID.Generate().Int64(),
				Name: name,
			}
			if err := s.tagRepo.Create(ctx, tx, t); err != nil {
				return err
			}
		}
		if err := s.repo.LinkTag(ctx, tx, productID, t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) toResponse(p *domain.Product, tags []string) domain.Response {
	if tags == nil {
		tags = []string{}
	}
	return domain.Response{
		ID:          snowflake.ID(p.ID).String(),
		Name:        p.Name,
		EAN13:       p.EAN13,
		ProductCode: p.ProductCode,
		ImageURL:    p.ImageURL,
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
