package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Record exposes column values of a row held outside the database.
type Record interface {
	Field(column string) interface{}
}

// Matcher is implemented by filtering specifications so they can also be
// evaluated against in-process records.
type Matcher interface {
	Matches(r Record) bool
}
