package course

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// CourseLecture is a lecture stub embedded inside a course category.
// ContentRef historically holds either the Content row id (as a string) or a
// bare filename; both forms resolve through ResolveContentRef.
type CourseLecture struct {
	Title           string `json:"title"`
	Slug            string `json:"slug,omitempty"`
	Subtitle        string `json:"subtitle,omitempty"`
	Description     string `json:"description,omitempty"`
	ContentRef      string `json:"content_id,omitempty"`
	OrderIndex      int    `json:"order_index"`
	DurationMinutes int    `json:"duration_minutes"`
	IsRequired      bool   `json:"is_required"`
	IsPreview       bool   `json:"is_preview"`
}

// CourseCategory is a named, ordered grouping of lecture stubs embedded
// inside a Course document. It has no lifecycle outside its parent course.
type CourseCategory struct {
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	OrderIndex int             `json:"order_index"`
	Lectures   []CourseLecture `json:"lectures"`
}

// CategoryList is the embedded category structure stored as a JSON column
type CategoryList []CourseCategory

func (l CategoryList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CategoryList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into CategoryList", value)
}

// Course is the aggregate root for its embedded categories and lecture stubs
type Course struct {
	gorm.Model
	Title         string       `json:"title"`
	Slug          string       `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string       `json:"description"`
	Author        string       `json:"author"`
	Status        string       `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL  string       `json:"thumbnail_url"`
	IsPublished   bool         `json:"is_published" gorm:"default:false"`
	TotalLectures int          `json:"total_lectures" gorm:"default:0"`
	Categories    CategoryList `json:"categories" gorm:"type:json"`
	IsDeleted     bool         `gorm:"default:false"`
}

// CountLectures returns the number of lecture stubs across all embedded categories
func (c *Course) CountLectures() int {
	total := 0
	for i := range c.Categories {
		total += len(c.Categories[i].Lectures)
	}
	return total
}
