package services

import (
	"context"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/data/filters"
	"github.com/yungbote/routesettings-backend/internal/data/repos"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/platform/validate"
)

// SeedFile is the reference data document loaded by the admin seed command.
//
//	criteria:
//	  - internal_name: season
//	    name: Season
//	    value_type: string
//	places:
//	  - name: Lighthouse
//	    latitude: 55.75
//	    longitude: 37.61
//	    criteria:
//	      season: summer
type SeedFile struct {
	Criteria []SeedCriterion `yaml:"criteria" validate:"dive"`
	Places   []SeedPlace     `yaml:"places" validate:"dive"`
}

type SeedCriterion struct {
	InternalName string `yaml:"internal_name" validate:"required,max=63,internal_name"`
	Name         string `yaml:"name" validate:"required,max=255"`
	ValueType    string `yaml:"value_type" validate:"omitempty,value_type"`
}

type SeedPlace struct {
	Name        string            `yaml:"name" validate:"required,max=255"`
	Description *string           `yaml:"description"`
	Latitude    float64           `yaml:"latitude" validate:"latitude"`
	Longitude   float64           `yaml:"longitude" validate:"longitude"`
	Criteria    map[string]string `yaml:"criteria" validate:"dive,max=255"`
}

type SeedResult struct {
	Criteria      int
	PlacesCreated int
	PlacesSkipped int
}

type SeedService interface {
	Parse(r io.Reader) (*SeedFile, error)
	Apply(ctx context.Context, file *SeedFile) (SeedResult, error)
}

type seedService struct {
	db            *gorm.DB
	log           *logger.Logger
	criterionRepo repos.CriterionRepo
	placeRepo     repos.PlaceRepo
	validate      *validator.Validate
}

func NewSeedService(db *gorm.DB, log *logger.Logger, criterionRepo repos.CriterionRepo, placeRepo repos.PlaceRepo) (SeedService, error) {
	v, err := validate.New()
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}
	return &seedService{
		db:            db,
		log:           log.With("service", "SeedService"),
		criterionRepo: criterionRepo,
		placeRepo:     placeRepo,
		validate:      v,
	}, nil
}

func (s *seedService) Parse(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file SeedFile
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, validationf("parse seed file: %v", err)
	}
	if err := s.validate.Struct(file); err != nil {
		return nil, validationf("seed file: %v", err)
	}
	return &file, nil
}

// Apply upserts criteria by internal_name and creates places that do not
// already exist with the same name and coordinates, in one transaction.
func (s *seedService) Apply(ctx context.Context, file *SeedFile) (SeedResult, error) {
	var res SeedResult
	if file == nil {
		return res, nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		criteria := make([]*types.Criterion, 0, len(file.Criteria))
		for _, c := range file.Criteria {
			criteria = append(criteria, &types.Criterion{
				InternalName: c.InternalName,
				Name:         c.Name,
				ValueType:    types.ValueType(c.ValueType),
			})
		}
		if err := s.criterionRepo.Upsert(dbc, criteria); err != nil {
			return err
		}
		res.Criteria = len(criteria)

		names := map[string]struct{}{}
		for _, p := range file.Places {
			for name := range p.Criteria {
				names[name] = struct{}{}
			}
		}
		lookup := make([]string, 0, len(names))
		for name := range names {
			lookup = append(lookup, name)
		}
		known, err := s.criterionRepo.GetByInternalNames(dbc, lookup)
		if err != nil {
			return err
		}
		byName := make(map[string]uint, len(known))
		for _, c := range known {
			byName[c.InternalName] = c.ID
		}

		for _, sp := range file.Places {
			exists, err := s.placeExists(dbc, sp)
			if err != nil {
				return err
			}
			if exists {
				res.PlacesSkipped++
				continue
			}
			place := &types.Place{
				Name:        sp.Name,
				Description: sp.Description,
				Latitude:    sp.Latitude,
				Longitude:   sp.Longitude,
			}
			for name, value := range sp.Criteria {
				id, ok := byName[name]
				if !ok {
					return validationf("place %q: unknown criterion %q", sp.Name, name)
				}
				place.Criteria = append(place.Criteria, types.PlaceCriterion{CriterionID: id, Value: value})
			}
			if _, err := s.placeRepo.Create(dbc, []*types.Place{place}); err != nil {
				return err
			}
			res.PlacesCreated++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, translate(err)
	}
	s.log.Info("reference data seeded", "criteria", res.Criteria, "places_created", res.PlacesCreated, "places_skipped", res.PlacesSkipped)
	return res, nil
}

func (s *seedService) placeExists(dbc dbctx.Context, sp SeedPlace) (bool, error) {
	lat := types.RoundCoordinate(sp.Latitude)
	lon := types.RoundCoordinate(sp.Longitude)
	name := sp.Name
	f := filters.PlaceFilter{
		Name:         &name,
		LatitudeGTE:  &lat,
		LatitudeLTE:  &lat,
		LongitudeGTE: &lon,
		LongitudeLTE: &lon,
	}
	_, count, err := s.placeRepo.List(dbc, f, filters.Page{Limit: 1})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
