package catalog

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const coordinateScale = 1e6

type Place struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Latitude    float64   `gorm:"type:decimal(8,6);not null" json:"latitude"`
	Longitude   float64   `gorm:"type:decimal(9,6);not null" json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Criteria []PlaceCriterion `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Place) TableName() string { return "places" }

// BeforeSave keeps coordinates at the six decimal places the columns hold.
func (p *Place) BeforeSave(tx *gorm.DB) error {
	p.Latitude = RoundCoordinate(p.Latitude)
	p.Longitude = RoundCoordinate(p.Longitude)
	return nil
}

func RoundCoordinate(v float64) float64 {
	return math.Round(v*coordinateScale) / coordinateScale
}

// PlaceCriterion attaches a criterion value to a place.
type PlaceCriterion struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	PlaceID     uint   `gorm:"not null;uniqueIndex:idx_place_criterion" json:"-"`
	CriterionID uint   `gorm:"not null;uniqueIndex:idx_place_criterion;index" json:"-"`
	Value       string `gorm:"size:255;not null;default:''" json:"value"`

	Criterion Criterion `gorm:"foreignKey:CriterionID;constraint:OnDelete:RESTRICT" json:"criterion"`
}

func (PlaceCriterion) TableName() string { return "place_criteria" }
