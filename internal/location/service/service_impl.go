package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pantryworks/pantry/internal/location/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("location.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, domain.Response{
			ID:   snowflake.ID(item.ID).String(),
			Name: item.Name,
		})
	}
	return resp, nil
}
