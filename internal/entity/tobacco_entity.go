package entity

import "time"

type Tobacco struct {
	Id             int64
	Name           string
	Taste          float64
	Molasses       float64
	SmokeTime      float64
	HeatResistance float64
	Comment        string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// TobaccoPatch is a field-level update. Nil fields are left untouched.
type TobaccoPatch struct {
	Name           *string
	Taste          *float64
	Molasses       *float64
	SmokeTime      *float64
	HeatResistance *float64
	Comment        *string
}

func (p TobaccoPatch) IsEmpty() bool {
	return p.Name == nil && p.Taste == nil && p.Molasses == nil &&
		p.SmokeTime == nil && p.HeatResistance == nil && p.Comment == nil
}
