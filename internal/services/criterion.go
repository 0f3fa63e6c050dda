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

type CriterionService interface {
	List(ctx context.Context, f filters.CriterionFilter) ([]*types.Criterion, error)
	Delete(ctx context.Context, internalName string) error
}

type criterionService struct {
	log           *logger.Logger
	criterionRepo repos.CriterionRepo
}

func NewCriterionService(log *logger.Logger, criterionRepo repos.CriterionRepo) CriterionService {
	return &criterionService{
		log:           log.With("service", "CriterionService"),
		criterionRepo: criterionRepo,
	}
}

func (s *criterionService) List(ctx context.Context, f filters.CriterionFilter) ([]*types.Criterion, error) {
	out, err := s.criterionRepo.List(dbctx.Context{Ctx: ctx}, f)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Delete refuses with ErrProtected while any place or route carries a value
// for the criterion.
func (s *criterionService) Delete(ctx context.Context, internalName string) error {
	dbc := dbctx.Context{Ctx: ctx}
	found, err := s.criterionRepo.GetByInternalNames(dbc, []string{internalName})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("criterion %q: %w", internalName, ErrNotFound)
	}
	if _, err := s.criterionRepo.Delete(dbc, found[0].ID); err != nil {
		return translate(err)
	}
	s.log.Info("criterion deleted", "internal_name", internalName)
	return nil
}
