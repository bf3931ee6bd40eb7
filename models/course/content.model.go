package course

import (
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Content is an uploaded HTML file record, the actual learning material.
// Created at upload time, read-heavy afterward.
type Content struct {
	gorm.Model
	Filename    string `json:"filename" gorm:"uniqueIndex;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	HTMLBody    string `json:"html_body" gorm:"type:text"`
	CategoryID  uint   `json:"category_id" gorm:"index"`
	CourseID    *uint  `json:"course_id" gorm:"index"`
	IsAssigned  bool   `json:"is_assigned" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Ref returns the canonical reference stored on embedded lecture stubs
func (c *Content) Ref() string {
	return strconv.FormatUint(uint64(c.ID), 10)
}

// DisplayTitle returns the title used for lecture matching, falling back to
// the filename (without extension) when no title was supplied at upload
func (c *Content) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return strings.TrimSuffix(c.Filename, filepath.Ext(c.Filename))
}

// ResolveContentRef resolves an embedded lecture's content reference.
// References come in two historical forms, a numeric row id or a bare
// filename; this is the only place that distinction is handled.
func ResolveContentRef(db *gorm.DB, ref string) (*Content, error) {
	if ref == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var content Content
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if err := db.Where("id = ? AND is_deleted = ?", uint(id), false).First(&content).Error; err == nil {
			return &content, nil
		}
	}

	if err := db.Where("filename = ? AND is_deleted = ?", ref, false).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}
