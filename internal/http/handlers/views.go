package handlers

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/routesettings-backend/internal/domain"
)

type PlaceView struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type CriterionView struct {
	ID           uint   `json:"id"`
	InternalName string `json:"internal_name"`
	Name         string `json:"name"`
	ValueType    string `json:"value_type"`
}

type CriterionValueView struct {
	Criterion CriterionView `json:"criterion"`
	Value     string        `json:"value"`
}

type PlaceDetailView struct {
	PlaceView
	Description *string              `json:"description"`
	Criteria    []CriterionValueView `json:"criteria"`
}

type RouteListItemView struct {
	UUID      uuid.UUID `json:"uuid"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	IsDraft   bool      `json:"is_draft"`
}

type RouteDetailView struct {
	RouteListItemView
	Details          datatypes.JSON       `json:"details"`
	GuideDescription *string              `json:"guide_description"`
	Places           []PlaceView          `json:"places"`
	Criteria         []CriterionValueView `json:"criteria"`
}

func NewPlaceView(p *types.Place) PlaceView {
	return PlaceView{ID: p.ID, Name: p.Name, Longitude: p.Longitude, Latitude: p.Latitude}
}

func NewPlaceViews(places []*types.Place) []PlaceView {
	out := make([]PlaceView, 0, len(places))
	for _, p := range places {
		out = append(out, NewPlaceView(p))
	}
	return out
}

func NewPlaceDetailView(p *types.Place) PlaceDetailView {
	criteria := make([]CriterionValueView, 0, len(p.Criteria))
	for _, pc := range p.Criteria {
		criteria = append(criteria, CriterionValueView{Criterion: NewCriterionView(&pc.Criterion), Value: pc.Value})
	}
	return PlaceDetailView{PlaceView: NewPlaceView(p), Description: p.Description, Criteria: criteria}
}

func NewCriterionView(c *types.Criterion) CriterionView {
	return CriterionView{ID: c.ID, InternalName: c.InternalName, Name: c.Name, ValueType: string(c.ValueType)}
}

func NewCriterionViews(criteria []*types.Criterion) []CriterionView {
	out := make([]CriterionView, 0, len(criteria))
	for _, c := range criteria {
		out = append(out, NewCriterionView(c))
	}
	return out
}

func NewRouteListItemView(r *types.Route) RouteListItemView {
	return RouteListItemView{UUID: r.UUID, UpdatedAt: r.UpdatedAt, Name: r.Name, IsDraft: r.IsDraft}
}

func NewRouteListItemViews(routes []*types.Route) []RouteListItemView {
	out := make([]RouteListItemView, 0, len(routes))
	for _, r := range routes {
		out = append(out, NewRouteListItemView(r))
	}
	return out
}

// NewRouteDetailView keeps places in attach order.
func NewRouteDetailView(r *types.Route) RouteDetailView {
	places := make([]PlaceView, 0, len(r.Places))
	for i := range r.Places {
		places = append(places, NewPlaceView(&r.Places[i].Place))
	}
	criteria := make([]CriterionValueView, 0, len(r.Criteria))
	for _, rc := range r.Criteria {
		criteria = append(criteria, CriterionValueView{Criterion: NewCriterionView(&rc.Criterion), Value: rc.Value})
	}
	return RouteDetailView{
		RouteListItemView: NewRouteListItemView(r),
		Details:           r.Details,
		GuideDescription:  r.GuideDescription,
		Places:            places,
		Criteria:          criteria,
	}
}
