package course

import "gorm.io/gorm"

// Category is the standalone classification entity referenced by Lecture and
// Content records. It is related to the category sub-documents embedded in a
// Course only by matching name/slug, not by a foreign key.
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}
