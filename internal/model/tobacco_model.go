package model

import "time"

type Tobacco struct {
	Id             int64     `gorm:"primaryKey;autoIncrement"`
	Name           string    `gorm:"type:text;not null;uniqueIndex"`
	Taste          float64   `gorm:"not null"`
	Molasses       float64   `gorm:"not null"`
	SmokeTime      float64   `gorm:"column:smoke_time;not null"`
	HeatResistance float64   `gorm:"column:heat_resistance;not null"`
	Comment        string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Tobacco) TableName() string {
	return "tobaccos"
}
