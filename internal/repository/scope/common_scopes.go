package scope

import "gorm.io/gorm"

// OrderByInsertion keeps listings in creation order, which the matcher
// relies on for stable tie-breaking.
func OrderByInsertion(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func OrderByOccurredDesc(db *gorm.DB) *gorm.DB {
	return db.Order("occurred_at DESC")
}
