package specification

import "gorm.io/gorm"

// ByName is the case-sensitive exact natural key lookup
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

type ByTobaccoName struct {
	Name string
}

func (s ByTobaccoName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tobacco_name = ?", s.Name)
}

type ByEventType struct {
	Type string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}
