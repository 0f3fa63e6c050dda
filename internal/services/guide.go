package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/routesettings-backend/internal/data/repos"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type GuidePlace struct {
	Name        string
	Description string
}

// GuideContext is the data handed to the guide template.
type GuideContext struct {
	Route  *types.Route
	Places []GuidePlace
}

// Guide is either stored text or a template context, never both.
type Guide struct {
	Text    string
	Context *GuideContext
}

func (g Guide) Stored() bool { return g.Context == nil }

type GuideService interface {
	Guide(ctx context.Context, routeUUID uuid.UUID) (Guide, error)
}

type guideService struct {
	log       *logger.Logger
	routeRepo repos.RouteRepo
}

func NewGuideService(log *logger.Logger, routeRepo repos.RouteRepo) GuideService {
	return &guideService{
		log:       log.With("service", "GuideService"),
		routeRepo: routeRepo,
	}
}

func (s *guideService) Guide(ctx context.Context, routeUUID uuid.UUID) (Guide, error) {
	author, err := principal(ctx)
	if err != nil {
		return Guide{}, err
	}
	route, err := s.routeRepo.GetByUUID(dbctx.Context{Ctx: ctx}, author, routeUUID)
	if err != nil {
		return Guide{}, err
	}
	if route == nil {
		return Guide{}, fmt.Errorf("route %s: %w", routeUUID, ErrNotFound)
	}
	if route.GuideDescription != nil && *route.GuideDescription != "" {
		return Guide{Text: *route.GuideDescription}, nil
	}

	places := make([]GuidePlace, 0, len(route.Places))
	for _, rp := range route.Places {
		gp := GuidePlace{Name: rp.Place.Name}
		if rp.Place.Description != nil {
			gp.Description = *rp.Place.Description
		}
		places = append(places, gp)
	}
	return Guide{Context: &GuideContext{Route: route, Places: places}}, nil
}
