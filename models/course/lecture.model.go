package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lecture is a standalone lecture document created by content-authoring
// tools. Sections holds the rich body (localized paragraphs, quiz questions)
// as raw JSON; the reconciler never touches it. The embedded structure inside
// Course is the source of truth for ordering and visibility.
type Lecture struct {
	gorm.Model
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	CategoryID  uint           `json:"category_id" gorm:"index"`
	CourseID    *uint          `json:"course_id" gorm:"index"`
	Sections    datatypes.JSON `json:"sections"`
	ContentRef  string         `json:"content_id"`
	IsDeleted   bool           `gorm:"default:false"`
}
