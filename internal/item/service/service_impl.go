package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pantryworks/pantry/internal/item/domain"
	productdomain "github.com/pantryworks/pantry/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProductRepo productdomain.Repository
	ProductSvc  productdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	productRepo productdomain.Repository
	productSvc  productdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("item.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
		productSvc:  p.ProductSvc,
	}
}

// Create inserts a stock entry after verifying the referenced product exists.
// The tag list attaches to the item's product, not the item; items carry no
// tag links of their own.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResponse, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	locationID, err := snowflake.ParseString(strings.TrimSpace(req.LocationID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if req.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item := &domain.Item{
		ID:             s.genID.Generate().Int64(),
		ProductID:      productID.Int64(),
		LocationID:     locationID.Int64(),
		Quantity:       quantity,
		ExpirationDate: optionalString(req.ExpirationDate),
		FrozenDate:     optionalString(req.FrozenDate),
		CreatedAt:      time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindByID(ctx, tx, item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		if err := s.repo.Create(ctx, tx, item); err != nil {
			return err
		}
		return s.productSvc.AttachTags(ctx, tx, item.ProductID, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	return &domain.CreateResponse{
		ItemID: snowflake.ID(item.ID).String(),
	}, nil
}

func (s *Service) ListByLocation(ctx context.Context, locationID string) ([]domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(locationID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	rows, err := s.repo.FindByLocation(ctx, s.db, id.Int64())
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(rows))
	tagCache := make(map[int64][]string)
	for _, row := range rows {
		tags, ok := tagCache[row.ProductID]
		if !ok {
			tags, err = s.productRepo.FindTagNames(ctx, s.db, row.ProductID)
			if err != nil {
				return nil, err
			}
			if tags == nil {
				tags = []string{}
			}
			tagCache[row.ProductID] = tags
		}

		resp = append(resp, domain.Response{
			ID:             snowflake.ID(row.ID).String(),
			ProductID:      snowflake.ID(row.ProductID).String(),
			LocationID:     snowflake.ID(row.LocationID).String(),
			Quantity:       row.Quantity,
			ExpirationDate: row.ExpirationDate,
			FrozenDate:     row.FrozenDate,
			Name:           row.ProductName,
			ImageURL:       row.ProductImageURL,
			Tags:           tags,
			CreatedAt:      row.CreatedAt,
		})
	}
	return resp, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
