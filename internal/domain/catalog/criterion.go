package catalog

import "time"

type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeBoolean ValueType = "boolean"
)

func (v ValueType) Valid() bool {
	switch v {
	case ValueTypeString, ValueTypeNumeric, ValueTypeBoolean:
		return true
	default:
		return false
	}
}

// Criterion is a typed attribute that places and routes can carry.
type Criterion struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:255;not null;index" json:"name"`
	InternalName string    `gorm:"size:63;not null;uniqueIndex" json:"internal_name"`
	ValueType    ValueType `gorm:"size:7;not null;default:string" json:"value_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Criterion) TableName() string { return "criteria" }
