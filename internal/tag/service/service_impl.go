package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pantryworks/pantry/internal/tag/domain"
	"github.com/pantryworks/pantry/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tag.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := domain.NormalizeName(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Existing: toResponse(existing)}
	}

	t := &domain.Tag{
		ID:   s.genID.Generate().Int64(),
		Name: name,
	}
	if err := s.repo.Create(ctx, s.db, t); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost a race with a concurrent create; surface the winner.
			winner, findErr := s.repo.FindByName(ctx, s.db, name)
			if findErr == nil && winner != nil {
				return nil, &domain.ConflictError{Existing: toResponse(winner)}
			}
		}
		return nil, err
	}

	resp := toResponse(t)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func toResponse(t *domain.Tag) domain.Response {
	return domain.Response{
		ID:   snowflake.ID(t.ID).String(),
		Name: t.Name,
	}
}
