// Package reconciler keeps the three representations of lecture content
// convergent: the category/lecture structure embedded in a Course document,
// standalone Lecture documents, and uploaded Content records. Every mutation
// is keyed off "does a match already exist", never a blind append, so running
// any entry point twice against an unchanged content pool is a no-op. The
// upload-time path (LinkSingleUpload) and the bulk path (ReconcileCourse)
// share one linking step and cannot diverge.
package reconciler

import (
	"errors"
	"fmt"
	"log"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrContentNotFound = errors.New("content record not found")
)

// Skip reasons recorded on per-content failures
const (
	SkipCategoryMismatch = "category_mismatch"
)

// Link actions reported for a single content record
const (
	ActionAlreadyLinked = "already_linked"
	ActionLinked        = "linked"
	ActionCreated       = "created_lecture"
	ActionSkipped       = "skipped"
)

const (
	defaultDurationMinutes = 15
	placeholderDescription = "Lecture material"
)

// SkippedContent records a content record that could not be linked
type SkippedContent struct {
	ContentID uint   `json:"content_id"`
	Filename  string `json:"filename"`
	Reason    string `json:"reason"`
}

// Result is the report for a single course reconciliation
type Result struct {
	CourseID            uint             `json:"course_id"`
	CourseTitle         string           `json:"course_title"`
	TotalContentRecords int              `json:"total_content_records"`
	ChangesMade         int              `json:"changes_made"`
	FinalLectureCount   int              `json:"final_lecture_count"`
	Linked              int              `json:"linked"`
	Created             int              `json:"created"`
	Skipped             []SkippedContent `json:"skipped,omitempty"`
}

// CourseFailure records a course whose reconciliation aborted
type CourseFailure struct {
	CourseID    uint   `json:"course_id"`
	CourseTitle string `json:"course_title"`
	Error       string `json:"error"`
}

// BulkResult is the report for a catalog-wide reconciliation pass
type BulkResult struct {
	Processed  int             `json:"processed"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Results    []Result        `json:"results"`
	Failures   []CourseFailure `json:"failures,omitempty"`
}

// LinkResult is the report for linking a single uploaded content record
type LinkResult struct {
	ContentID    uint   `json:"content_id"`
	Filename     string `json:"filename"`
	Action       string `json:"action"`
	Reason       string `json:"reason,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	LectureTitle string `json:"lecture_title,omitempty"`
	CourseSaved  bool   `json:"course_saved"`
}

// linkOutcome is the internal result of the shared linking step
type linkOutcome struct {
	action   string
	reason   string
	category string
	lecture  string
	changes  int
}

// linkContent makes one content record reachable from the course's embedded
// structure. It is the single code path used by both ReconcileCourse and
// LinkSingleUpload. Steps, in order: already-linked check across the whole
// course, category resolution (synthesizing an embedded category from the
// standalone one when absent), lecture resolution by fuzzy title match, and
// lecture creation as the fallback.
func linkContent(crs *courseModels.Course, content *courseModels.Content, standalone map[uint]*courseModels.Category) linkOutcome {
	// Already reachable, whether by row id or by historical filename ref
	if ci, li := findLinkedLecture(crs, content.Ref(), content.Filename); ci >= 0 {
		return linkOutcome{
			action:   ActionAlreadyLinked,
			category: crs.Categories[ci].Name,
			lecture:  crs.Categories[ci].Lectures[li].Title,
		}
	}

	cat := standalone[content.CategoryID]
	if cat == nil || cat.Name == "" {
		return linkOutcome{action: ActionSkipped, reason: SkipCategoryMismatch}
	}

	changes := 0
	catIdx := findEmbeddedCategory(crs, cat.Name, cat.Slug)
	if catIdx < 0 {
		crs.Categories = append(crs.Categories, courseModels.CourseCategory{
			Name:       cat.Name,
			Slug:       cat.Slug,
			OrderIndex: nextCategoryOrder(crs),
		})
		catIdx = len(crs.Categories) - 1
		changes++
	}

	embedded := &crs.Categories[catIdx]
	if li := findMatchCandidate(embedded, content.DisplayTitle()); li >= 0 {
		embedded.Lectures[li].ContentRef = content.Ref()
		changes++
		return linkOutcome{
			action:   ActionLinked,
			category: embedded.Name,
			lecture:  embedded.Lectures[li].Title,
			changes:  changes,
		}
	}

	description := content.Description
	if description == "" {
		description = placeholderDescription
	}
	stub := courseModels.CourseLecture{
		Title:           content.DisplayTitle(),
		Slug:            slugify(content.DisplayTitle()),
		Subtitle:        description,
		Description:     description,
		ContentRef:      content.Ref(),
		OrderIndex:      len(embedded.Lectures),
		DurationMinutes: defaultDurationMinutes,
		IsRequired:      true,
	}
	embedded.Lectures = append(embedded.Lectures, stub)
	changes++

	return linkOutcome{
		action:   ActionCreated,
		category: embedded.Name,
		lecture:  stub.Title,
		changes:  changes,
	}
}

// ReconcileCourse makes every content record assigned to the course reachable
// from its embedded category/lecture structure, persisting the course only
// when something actually changed. A second run against the same content pool
// reports zero changes.
func ReconcileCourse(db *gorm.DB, courseID uint) (*Result, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("load course %d: %w", courseID, err)
	}

	standalone, err := loadStandaloneCategories(db)
	if err != nil {
		return nil, err
	}

	var contents []courseModels.Content
	if err := db.
		Where("course_id = ? AND is_assigned = ? AND is_deleted = ?", courseID, true, false).
		Order("id ASC").
		Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("load content for course %d: %w", courseID, err)
	}

	result := &Result{
		CourseID:            crs.ID,
		CourseTitle:         crs.Title,
		TotalContentRecords: len(contents),
	}

	changes := 0
	for i := range contents {
		outcome := linkContent(&crs, &contents[i], standalone)
		changes += outcome.changes

		switch outcome.action {
		case ActionLinked:
			result.Linked++
		case ActionCreated:
			result.Created++
		case ActionSkipped:
			result.Skipped = append(result.Skipped, SkippedContent{
				ContentID: contents[i].ID,
				Filename:  contents[i].Filename,
				Reason:    outcome.reason,
			})
		}
	}

	if total := crs.CountLectures(); total != crs.TotalLectures {
		crs.TotalLectures = total
		changes++
	}
	result.ChangesMade = changes
	result.FinalLectureCount = crs.TotalLectures

	if changes > 0 {
		if err := db.Save(&crs).Error; err != nil {
			return nil, fmt.Errorf("save course %d: %w", crs.ID, err)
		}
	}
	return result, nil
}

// ReconcileAllCourses runs ReconcileCourse over every published course. One
// course's failure does not abort the batch; it is recorded and the pass
// continues. Retry policy belongs to the caller.
func ReconcileAllCourses(db *gorm.DB) (*BulkResult, error) {
	var courses []courseModels.Course
	if err := db.
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("id ASC").
		Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("load published courses: %w", err)
	}

	bulk := &BulkResult{}
	for i := range courses {
		bulk.Processed++
		res, err := ReconcileCourse(db, courses[i].ID)
		if err != nil {
			bulk.Failed++
			bulk.Failures = append(bulk.Failures, CourseFailure{
				CourseID:    courses[i].ID,
				CourseTitle: courses[i].Title,
				Error:       err.Error(),
			})
			log.Printf("[RECONCILER] Course %d (%s) failed: %v", courses[i].ID, courses[i].Title, err)
			continue
		}
		bulk.Successful++
		bulk.Results = append(bulk.Results, *res)
	}
	return bulk, nil
}

// LinkSingleUpload links exactly one freshly uploaded content record into its
// course, so the admin UI can report the outcome without a full rescan. The
// final state for that record is the same a full ReconcileCourse run would
// produce.
func LinkSingleUpload(db *gorm.DB, courseID, contentID uint) (*LinkResult, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("load course %d: %w", courseID, err)
	}

	var content courseModels.Content
	if err := db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("load content %d: %w", contentID, err)
	}

	standalone, err := loadStandaloneCategories(db)
	if err != nil {
		return nil, err
	}

	outcome := linkContent(&crs, &content, standalone)
	changes := outcome.changes
	if total := crs.CountLectures(); total != crs.TotalLectures {
		crs.TotalLectures = total
		changes++
	}

	if changes > 0 {
		if err := db.Save(&crs).Error; err != nil {
			return nil, fmt.Errorf("save course %d: %w", crs.ID, err)
		}
	}

	return &LinkResult{
		ContentID:    content.ID,
		Filename:     content.Filename,
		Action:       outcome.action,
		Reason:       outcome.reason,
		CategoryName: outcome.category,
		LectureTitle: outcome.lecture,
		CourseSaved:  changes > 0,
	}, nil
}

// loadStandaloneCategories indexes the standalone Category collection by id
func loadStandaloneCategories(db *gorm.DB) (map[uint]*courseModels.Category, error) {
	var categories []courseModels.Category
	if err := db.Where("is_deleted = ?", false).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	byID := make(map[uint]*courseModels.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	return byID, nil
}
