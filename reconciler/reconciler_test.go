package reconciler

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:reconciler_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Category{},
		&courseModels.Lecture{},
		&courseModels.Content{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *courseModels.Category {
	t.Helper()
	cat := &courseModels.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(cat).Error)
	return cat
}

func seedCourse(t *testing.T, db *gorm.DB, title, slug string, categories courseModels.CategoryList) *courseModels.Course {
	t.Helper()
	crs := &courseModels.Course{
		Title:       title,
		Slug:        slug,
		Status:      "ACTIVE",
		IsPublished: true,
		Categories:  categories,
	}
	crs.TotalLectures = crs.CountLectures()
	require.NoError(t, db.Create(crs).Error)
	return crs
}

func seedContent(t *testing.T, db *gorm.DB, courseID, categoryID uint, title, filename string) *courseModels.Content {
	t.Helper()
	content := &courseModels.Content{
		Filename:   filename,
		Title:      title,
		HTMLBody:   "<h1>" + title + "</h1>",
		CategoryID: categoryID,
		CourseID:   &courseID,
		IsAssigned: true,
	}
	require.NoError(t, db.Create(content).Error)
	return content
}

func reloadCourse(t *testing.T, db *gorm.DB, id uint) *courseModels.Course {
	t.Helper()
	var crs courseModels.Course
	require.NoError(t, db.First(&crs, id).Error)
	return &crs
}

func TestReconcileCourseNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := ReconcileCourse(db, 42)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestLinkSingleUploadNotFound(t *testing.T) {
	db := setupTestDB(t)
	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", nil)

	_, err := LinkSingleUpload(db, crs.ID, 99)
	require.ErrorIs(t, err, ErrContentNotFound)

	_, err = LinkSingleUpload(db, 99, 1)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

// Upload scenario: a content record whose title exactly matches an unlinked
// stub in the matching category gets linked to that stub, and an immediate
// full reconcile afterwards is a no-op.
func TestLinkSingleUploadMatchesExistingStub(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "WebPentesting", "webpentesting")
	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", courseModels.CategoryList{
		{
			Name:       "WebPentesting",
			Slug:       "webpentesting",
			OrderIndex: 0,
			Lectures: []courseModels.CourseLecture{
				{Title: "Host Header Attacks", OrderIndex: 0, DurationMinutes: 20, IsRequired: true},
			},
		},
	})
	content := seedContent(t, db, crs.ID, cat.ID, "Host Header Attacks", "host-header-attacks.html")

	res, err := LinkSingleUpload(db, crs.ID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionLinked, res.Action)
	assert.Equal(t, "WebPentesting", res.CategoryName)
	assert.Equal(t, "Host Header Attacks", res.LectureTitle)
	assert.True(t, res.CourseSaved)

	got := reloadCourse(t, db, crs.ID)
	require.Len(t, got.Categories, 1)
	require.Len(t, got.Categories[0].Lectures, 1)
	assert.Equal(t, content.Ref(), got.Categories[0].Lectures[0].ContentRef)
	assert.Equal(t, 1, got.TotalLectures)

	// Immediately re-running the full reconcile must change nothing
	full, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, full.ChangesMade)
}

func TestReconcileCourseIdempotent(t *testing.T) {
	db := setupTestDB(t)

	webCat := seedCategory(t, db, "WebPentesting", "webpentesting")
	netCat := seedCategory(t, db, "Network Security", "network-security")
	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", courseModels.CategoryList{
		{
			Name:       "WebPentesting",
			Slug:       "webpentesting",
			OrderIndex: 0,
			Lectures: []courseModels.CourseLecture{
				{Title: "SQL Injection", OrderIndex: 0, DurationMinutes: 30, IsRequired: true},
			},
		},
	})

	// One content matches an existing stub, one needs a new stub, one needs a
	// whole new embedded category.
	seedContent(t, db, crs.ID, webCat.ID, "SQL Injection", "sql-injection.html")
	seedContent(t, db, crs.ID, webCat.ID, "XXE Attacks", "xxe-attacks.html")
	seedContent(t, db, crs.ID, netCat.ID, "ARP Spoofing", "arp-spoofing.html")

	first, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalContentRecords)
	assert.Equal(t, 1, first.Linked)
	assert.Equal(t, 2, first.Created)
	assert.Positive(t, first.ChangesMade)
	assert.Equal(t, 3, first.FinalLectureCount)

	afterFirst, err := json.Marshal(reloadCourse(t, db, crs.ID).Categories)
	require.NoError(t, err)

	second, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.ChangesMade)
	assert.Equal(t, 3, second.FinalLectureCount)

	afterSecond, err := json.Marshal(reloadCourse(t, db, crs.ID).Categories)
	require.NoError(t, err)
	assert.Equal(t, string(afterFirst), string(afterSecond))
}

func TestReconcileCourseCompleteness(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "WebPentesting", "webpentesting")
	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", nil)

	contents := []*courseModels.Content{
		seedContent(t, db, crs.ID, cat.ID, "SQL Injection", "sql-injection.html"),
		seedContent(t, db, crs.ID, cat.ID, "XSS", "xss.html"),
		seedContent(t, db, crs.ID, cat.ID, "CSRF", "csrf.html"),
	}

	_, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)

	got := reloadCourse(t, db, crs.ID)
	seen := make(map[string]int)
	for _, c := range got.Categories {
		for _, l := range c.Lectures {
			if l.ContentRef != "" {
				seen[l.ContentRef]++
			}
		}
	}

	// Every assigned content record is reachable from exactly one stub
	for _, content := range contents {
		assert.Equal(t, 1, seen[content.Ref()], "content %s", content.Filename)
	}
	assert.Len(t, seen, len(contents))
}

func TestCategorySynthesis(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "Binary Exploitation", "binary-exploitation")
	crs := seedCourse(t, db, "Advanced Exploitation", "advanced-exploitation", courseModels.CategoryList{
		{Name: "Basics", Slug: "basics", OrderIndex: 0},
	})
	content := seedContent(t, db, crs.ID, cat.ID, "Stack Smashing", "stack-smashing.html")

	res, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	got := reloadCourse(t, db, crs.ID)
	require.Len(t, got.Categories, 2)
	synthesized := got.Categories[1]
	assert.Equal(t, "Binary Exploitation", synthesized.Name)
	assert.Equal(t, "binary-exploitation", synthesized.Slug)
	assert.Equal(t, 1, synthesized.OrderIndex)
	require.Len(t, synthesized.Lectures, 1)
	assert.Equal(t, content.Ref(), synthesized.Lectures[0].ContentRef)

	// A second pass must not synthesize the category again
	res, err = ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ChangesMade)
	assert.Len(t, reloadCourse(t, db, crs.ID).Categories, 2)
}

// Tie-break: among several unlinked stubs that fuzzy-match, the lowest order
// (first-authored) wins.
func TestTieBreakLowestOrderWins(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "WebPentesting", "webpentesting")
	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", courseModels.CategoryList{
		{
			Name:       "WebPentesting",
			Slug:       "webpentesting",
			OrderIndex: 0,
			Lectures: []courseModels.CourseLecture{
				{Title: "Command Injection", OrderIndex: 0, IsRequired: true},
				{Title: "Command Injection Basics", OrderIndex: 1, IsRequired: true},
			},
		},
	})
	content := seedContent(t, db, crs.ID, cat.ID, "Command Injection", "command-injection.html")

	_, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)

	got := reloadCourse(t, db, crs.ID)
	lectures := got.Categories[0].Lectures
	assert.Equal(t, content.Ref(), lectures[0].ContentRef)
	assert.Empty(t, lectures[1].ContentRef)
}

func TestSkipCategoryMismatch(t *testing.T) {
	db := setupTestDB(t)

	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", nil)
	content := seedContent(t, db, crs.ID, 9999, "Orphan Lecture", "orphan.html")

	res, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ChangesMade)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, content.ID, res.Skipped[0].ContentID)
	assert.Equal(t, SkipCategoryMismatch, res.Skipped[0].Reason)

	// Partial progress: the skip does not prevent linking other records
	cat := seedCategory(t, db, "WebPentesting", "webpentesting")
	seedContent(t, db, crs.ID, cat.ID, "SQL Injection", "sql-injection.html")

	res, err = ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 1, res.FinalLectureCount)
}

func TestLectureCreationFallbackDefaults(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "WebPentesting", "webpentesting")
	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", nil)
	// No title on the upload: the filename (without extension) stands in
	content := seedContent(t, db, crs.ID, cat.ID, "", "host-header-attacks.html")

	_, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)

	got := reloadCourse(t, db, crs.ID)
	require.Len(t, got.Categories, 1)
	require.Len(t, got.Categories[0].Lectures, 1)

	stub := got.Categories[0].Lectures[0]
	assert.Equal(t, "host-header-attacks", stub.Title)
	assert.Equal(t, content.Ref(), stub.ContentRef)
	assert.Equal(t, 0, stub.OrderIndex)
	assert.Equal(t, 15, stub.DurationMinutes)
	assert.True(t, stub.IsRequired)
	assert.Equal(t, "Lecture material", stub.Description)
}

// Historical courses carry bare filenames in content_id. Those still count as
// linked and must not be re-linked or duplicated.
func TestFilenameRefCountsAsLinked(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "WebPentesting", "webpentesting")
	crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", courseModels.CategoryList{
		{
			Name:       "WebPentesting",
			Slug:       "webpentesting",
			OrderIndex: 0,
			Lectures: []courseModels.CourseLecture{
				{Title: "Host Header Attacks", ContentRef: "host-header-attacks.html", OrderIndex: 0},
			},
		},
	})
	seedContent(t, db, crs.ID, cat.ID, "Host Header Attacks", "host-header-attacks.html")

	res, err := ReconcileCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ChangesMade)
	assert.Equal(t, 0, res.Linked)
	assert.Equal(t, 0, res.Created)

	got := reloadCourse(t, db, crs.ID)
	require.Len(t, got.Categories[0].Lectures, 1)
}

// The upload-time path and the bulk path must produce the same course state
// from the same starting point.
func TestSingleUploadAndBulkProduceSameState(t *testing.T) {
	seed := func(db *gorm.DB) (*courseModels.Course, *courseModels.Content) {
		cat := seedCategory(t, db, "WebPentesting", "webpentesting")
		crs := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", courseModels.CategoryList{
			{
				Name:       "WebPentesting",
				Slug:       "webpentesting",
				OrderIndex: 0,
				Lectures: []courseModels.CourseLecture{
					{Title: "SQL Injection", OrderIndex: 0, IsRequired: true},
				},
			},
		})
		content := seedContent(t, db, crs.ID, cat.ID, "SQL Injection Deep Dive", "sql-injection-deep-dive.html")
		return crs, content
	}

	dbSingle := setupTestDB(t)
	crsSingle, contentSingle := seed(dbSingle)
	_, err := LinkSingleUpload(dbSingle, crsSingle.ID, contentSingle.ID)
	require.NoError(t, err)

	dbBulk := setupTestDB(t)
	crsBulk, _ := seed(dbBulk)
	_, err = ReconcileCourse(dbBulk, crsBulk.ID)
	require.NoError(t, err)

	gotSingle, err := json.Marshal(reloadCourse(t, dbSingle, crsSingle.ID).Categories)
	require.NoError(t, err)
	gotBulk, err := json.Marshal(reloadCourse(t, dbBulk, crsBulk.ID).Categories)
	require.NoError(t, err)
	assert.Equal(t, string(gotBulk), string(gotSingle))
}

func TestReconcileAllCourses(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "WebPentesting", "webpentesting")
	published := seedCourse(t, db, "Web Application Pentesting", "webapp-pentesting", nil)
	seedContent(t, db, published.ID, cat.ID, "SQL Injection", "sql-injection.html")

	draft := &courseModels.Course{Title: "Draft Course", Slug: "draft-course"}
	require.NoError(t, db.Create(draft).Error)
	seedContent(t, db, draft.ID, cat.ID, "Hidden", "hidden.html")

	bulk, err := ReconcileAllCourses(db)
	require.NoError(t, err)
	assert.Equal(t, 1, bulk.Processed)
	assert.Equal(t, 1, bulk.Successful)
	assert.Equal(t, 0, bulk.Failed)
	require.Len(t, bulk.Results, 1)
	assert.Equal(t, published.ID, bulk.Results[0].CourseID)

	// Unpublished course untouched
	gotDraft := reloadCourse(t, db, draft.ID)
	assert.Empty(t, gotDraft.Categories)
}
