package models

import "gorm.io/gorm"

// Category rows form a forest via ParentID. Cycles are not prevented at the
// schema level; the tree builder treats unresolvable parents as roots.
type Category struct {
	gorm.Model
	Name     string `gorm:"unique;not null" json:"name"`
	Slug     string `gorm:"unique;not null" json:"slug"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
}
