package scope

import "gorm.io/gorm"

// OrderByCreatedAsc runs after any explicit ordering and only breaks ties.
func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func OrderByDayDesc(db *gorm.DB) *gorm.DB {
	return db.Order("day DESC")
}

func OrderByEarnedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("date_earned ASC").Order("id ASC")
}
