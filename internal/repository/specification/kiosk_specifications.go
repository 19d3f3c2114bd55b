package specification

import "gorm.io/gorm"

// BySlug filters hotspots by their stable identifier.
type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// ActiveOnly keeps records flagged active (visitor-facing reads).
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// BySortOrder orders hotspots the way the info panel lists them.
type BySortOrder struct{}

func (s BySortOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at ASC")
}
