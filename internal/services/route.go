package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/data/filters"
	"github.com/yungbote/routesettings-backend/internal/data/repos"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/ctxutil"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/platform/offload"
	"github.com/yungbote/routesettings-backend/internal/platform/pointers"
	"github.com/yungbote/routesettings-backend/internal/platform/validate"
)

// Value is a pointer so a missing or null value fails required.
type RouteCriterionInput struct {
	CriterionID uint    `json:"criterion_id" validate:"required"`
	Value       *string `json:"value" validate:"required,max=255"`
}

// RouteInput is a create or update payload. Which members apply is decided
// by the accompanying FieldSet.
type RouteInput struct {
	Name             *string               `validate:"omitempty,notblank,max=255"`
	GuideDescription *string
	Criteria         []RouteCriterionInput `validate:"unique=CriterionID,dive"`
	Places           []uint
}

// FieldSet marks the RouteInput members present in a request.
type FieldSet struct {
	Name             bool
	GuideDescription bool
	Criteria         bool
	Places           bool
}

func AllFields() FieldSet {
	return FieldSet{Name: true, GuideDescription: true, Criteria: true, Places: true}
}

type RouteService interface {
	List(ctx context.Context, f filters.RouteFilter, page filters.Page) ([]*types.Route, int64, error)
	Get(ctx context.Context, routeUUID uuid.UUID) (*types.Route, error)
	Create(ctx context.Context, in RouteInput) (*types.Route, error)
	Update(ctx context.Context, routeUUID uuid.UUID, in RouteInput, fields FieldSet) (*types.Route, error)
	Delete(ctx context.Context, routeUUID uuid.UUID) error
	ImportDetails(ctx context.Context, routeUUID uuid.UUID, details []byte) error
}

type routeService struct {
	db            *gorm.DB
	log           *logger.Logger
	routeRepo     repos.RouteRepo
	placeRepo     repos.PlaceRepo
	criterionRepo repos.CriterionRepo
	pool          *offload.Pool
	validate      *validator.Validate
}

func NewRouteService(
	db *gorm.DB,
	log *logger.Logger,
	routeRepo repos.RouteRepo,
	placeRepo repos.PlaceRepo,
	criterionRepo repos.CriterionRepo,
	pool *offload.Pool,
) (RouteService, error) {
	v, err := validate.New()
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}
	return &routeService{
		db:            db,
		log:           log.With("service", "RouteService"),
		routeRepo:     routeRepo,
		placeRepo:     placeRepo,
		criterionRepo: criterionRepo,
		pool:          pool,
		validate:      v,
	}, nil
}

func principal(ctx context.Context) (uuid.UUID, error) {
	id := ctxutil.UserID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return id, nil
}

func (s *routeService) List(ctx context.Context, f filters.RouteFilter, page filters.Page) ([]*types.Route, int64, error) {
	author, err := principal(ctx)
	if err != nil {
		return nil, 0, err
	}
	out, count, err := s.routeRepo.List(dbctx.Context{Ctx: ctx}, author, f, page)
	if err != nil {
		return nil, 0, translate(err)
	}
	return out, count, nil
}

func (s *routeService) Get(ctx context.Context, routeUUID uuid.UUID) (*types.Route, error) {
	author, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.get(dbctx.Context{Ctx: ctx}, author, routeUUID)
}

func (s *routeService) get(dbc dbctx.Context, author, routeUUID uuid.UUID) (*types.Route, error) {
	r, err := s.routeRepo.GetByUUID(dbc, author, routeUUID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("route %s: %w", routeUUID, ErrNotFound)
	}
	return r, nil
}

func (s *routeService) Create(ctx context.Context, in RouteInput) (*types.Route, error) {
	author, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	fields := AllFields()
	if err := s.validateInput(in, fields); err != nil {
		return nil, err
	}

	var created *types.Route
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.checkReferences(dbc, in, fields); err != nil {
			return err
		}
		route := &types.Route{
			Name:             strings.TrimSpace(*in.Name),
			GuideDescription: in.GuideDescription,
			AuthorID:         &author,
		}
		if err := s.routeRepo.Create(dbc, route); err != nil {
			return err
		}
		if err := s.applyAssociations(dbc, route.ID, in, fields); err != nil {
			return err
		}
		created, err = s.get(dbc, author, route.UUID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	s.log.Info("route created", "route_uuid", created.UUID, "author_id", author)
	return created, nil
}

func (s *routeService) Update(ctx context.Context, routeUUID uuid.UUID, in RouteInput, fields FieldSet) (*types.Route, error) {
	author, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(in, fields); err != nil {
		return nil, err
	}

	var updated *types.Route
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		current, err := s.routeRepo.GetSummaryByUUID(dbc, author, routeUUID)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("route %s: %w", routeUUID, ErrNotFound)
		}
		if err := s.checkReferences(dbc, in, fields); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if fields.Name {
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if fields.GuideDescription {
			updates["guide_description"] = in.GuideDescription
		}
		if err := s.routeRepo.UpdateFields(dbc, current.ID, updates); err != nil {
			return err
		}
		if err := s.applyAssociations(dbc, current.ID, in, fields); err != nil {
			return err
		}
		updated, err = s.get(dbc, author, routeUUID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	s.log.Info("route updated", "route_uuid", routeUUID, "author_id", author)
	return updated, nil
}

// Delete runs on the offload pool.
func (s *routeService) Delete(ctx context.Context, routeUUID uuid.UUID) error {
	author, err := principal(ctx)
	if err != nil {
		return err
	}
	n, err := offload.Value(ctx, s.pool, func(ctx context.Context) (int64, error) {
		return s.routeRepo.DeleteByUUID(dbctx.Context{Ctx: ctx}, author, routeUUID)
	})
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return fmt.Errorf("route %s: %w", routeUUID, ErrNotFound)
	}
	s.log.Info("route deleted", "route_uuid", routeUUID, "author_id", author)
	return nil
}

// ImportDetails stores builder output for any author's route. An empty or
// "null" document turns the route back into a draft.
func (s *routeService) ImportDetails(ctx context.Context, routeUUID uuid.UUID, details []byte) error {
	var stored datatypes.JSON
	trimmed := strings.TrimSpace(string(details))
	if trimmed != "" && trimmed != "null" {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
			return validationf("details must be a JSON object: %v", err)
		}
		stored = datatypes.JSON(trimmed)
	}
	n, err := s.routeRepo.SetDetails(dbctx.Context{Ctx: ctx}, routeUUID, stored)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("route %s: %w", routeUUID, ErrNotFound)
	}
	s.log.Info("route details imported", "route_uuid", routeUUID, "draft", stored == nil)
	return nil
}

func (s *routeService) validateInput(in RouteInput, fields FieldSet) error {
	if fields.Name && in.Name == nil {
		return validationf("name must not be null")
	}
	if err := s.validate.Struct(in); err != nil {
		return validationf("route: %v", err)
	}
	return nil
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *routeService) checkReferences(dbc dbctx.Context, in RouteInput, fields FieldSet) error {
	if fields.Criteria && len(in.Criteria) > 0 {
		ids := make([]uint, 0, len(in.Criteria))
		for _, c := range in.Criteria {
			ids = append(ids, c.CriterionID)
		}
		n, err := s.criterionRepo.CountByIDs(dbc, ids)
		if err != nil {
			return err
		}
		if int(n) != len(ids) {
			return validationf("unknown criterion in %v", ids)
		}
	}
	if fields.Places && len(in.Places) > 0 {
		ids := distinct(in.Places)
		n, err := s.placeRepo.CountByIDs(dbc, ids)
		if err != nil {
			return err
		}
		if int(n) != len(ids) {
			return validationf("unknown place in %v", ids)
		}
	}
	return nil
}

func (s *routeService) applyAssociations(dbc dbctx.Context, routeID uint, in RouteInput, fields FieldSet) error {
	if fields.Criteria {
		rows := make([]types.RouteCriterion, 0, len(in.Criteria))
		for _, c := range in.Criteria {
			rows = append(rows, types.RouteCriterion{CriterionID: c.CriterionID, Value: pointers.Deref(c.Value)})
		}
		if err := s.routeRepo.ReplaceCriteria(dbc, routeID, rows); err != nil {
			return err
		}
	}
	if fields.Places {
		if err := s.routeRepo.ReplacePlaces(dbc, routeID, in.Places); err != nil {
			return err
		}
	}
	return nil
}
