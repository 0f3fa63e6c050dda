package services

import (
	"context"
	"fmt"

	"github.com/yungbote/routesettings-backend/internal/data/filters"
	"github.com/yungbote/routesettings-backend/internal/data/repos"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type PlaceService interface {
	List(ctx context.Context, f filters.PlaceFilter, page filters.Page) ([]*types.Place, int64, error)
	Get(ctx context.Context, id uint) (*types.Place, error)
	Delete(ctx context.Context, id uint) error
}

type placeService struct {
	log       *logger.Logger
	placeRepo repos.PlaceRepo
}

func NewPlaceService(log *logger.Logger, placeRepo repos.PlaceRepo) PlaceService {
	return &placeService{
		log:       log.With("service", "PlaceService"),
		placeRepo: placeRepo,
	}
}

func (s *placeService) List(ctx context.Context, f filters.PlaceFilter, page filters.Page) ([]*types.Place, int64, error) {
	places, count, err := s.placeRepo.List(dbctx.Context{Ctx: ctx}, f, page)
	if err != nil {
		return nil, 0, translate(err)
	}
	return places, count, nil
}

func (s *placeService) Get(ctx context.Context, id uint) (*types.Place, error) {
	p, err := s.placeRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("place %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// Delete refuses with ErrProtected while a route references the place.
func (s *placeService) Delete(ctx context.Context, id uint) error {
	n, err := s.placeRepo.Delete(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return fmt.Errorf("place %d: %w", id, ErrNotFound)
	}
	s.log.Info("place deleted", "place_id", id)
	return nil
}
