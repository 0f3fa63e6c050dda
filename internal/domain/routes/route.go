package routes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/domain/catalog"
	"github.com/yungbote/routesettings-backend/internal/domain/user"
)

type Route struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	UUID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:uuid" json:"uuid"`
	Name             string         `gorm:"size:255;not null;index" json:"name"`
	Details          datatypes.JSON `gorm:"column:details" json:"details"`
	GuideDescription *string        `gorm:"type:text;column:guide_description" json:"guide_description"`
	GuideImage       *string        `gorm:"size:255;column:guide_image" json:"-"`
	AuthorID         *uuid.UUID     `gorm:"type:uuid;index;column:author_id" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// IsDraft is filled only by queries that project it; see repos.
	IsDraft bool `gorm:"->;-:migration;column:is_draft" json:"is_draft"`

	Author   *user.User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
	Places   []RoutePlace     `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE" json:"-"`
	Criteria []RouteCriterion `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Route) TableName() string { return "routes" }

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	return nil
}

type RoutePlace struct {
	ID      uint `gorm:"primaryKey;autoIncrement"`
	RouteID uint `gorm:"not null;uniqueIndex:idx_route_place"`
	PlaceID uint `gorm:"not null;uniqueIndex:idx_route_place;index"`

	Place catalog.Place `gorm:"foreignKey:PlaceID;constraint:OnDelete:RESTRICT"`
}

func (RoutePlace) TableName() string { return "route_places" }

type RouteCriterion struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	RouteID     uint   `gorm:"not null;uniqueIndex:idx_route_criterion"`
	CriterionID uint   `gorm:"not null;uniqueIndex:idx_route_criterion;index"`
	Value       string `gorm:"size:255;not null;default:''"`

	Criterion catalog.Criterion `gorm:"foreignKey:CriterionID;constraint:OnDelete:RESTRICT"`
}

func (RouteCriterion) TableName() string { return "route_criteria" }
