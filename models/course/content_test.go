package course

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:course_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Course{}, &Category{}, &Lecture{}, &Content{}))
	return db
}

func TestResolveContentRef(t *testing.T) {
	db := setupTestDB(t)

	content := &Content{Filename: "host-header-attacks.html", Title: "Host Header Attacks"}
	require.NoError(t, db.Create(content).Error)

	// Numeric row id form
	got, err := ResolveContentRef(db, content.Ref())
	require.NoError(t, err)
	assert.Equal(t, content.ID, got.ID)

	// Historical bare filename form
	got, err = ResolveContentRef(db, "host-header-attacks.html")
	require.NoError(t, err)
	assert.Equal(t, content.ID, got.ID)

	// Empty and dangling refs fail
	_, err = ResolveContentRef(db, "")
	assert.Error(t, err)
	_, err = ResolveContentRef(db, "no-such-file.html")
	assert.Error(t, err)

	// Soft-deleted content is not resolvable
	require.NoError(t, db.Model(content).Update("is_deleted", true).Error)
	_, err = ResolveContentRef(db, content.Ref())
	assert.Error(t, err)
}

// A numeric-looking filename must still resolve when no row with that id exists
func TestResolveContentRefNumericFilename(t *testing.T) {
	db := setupTestDB(t)

	content := &Content{Filename: "1001", Title: "Legacy Upload"}
	require.NoError(t, db.Create(content).Error)

	got, err := ResolveContentRef(db, "1001")
	require.NoError(t, err)
	assert.Equal(t, content.ID, got.ID)
}

func TestContentDisplayTitle(t *testing.T) {
	content := &Content{Filename: "host-header-attacks.html", Title: "Host Header Attacks"}
	assert.Equal(t, "Host Header Attacks", content.DisplayTitle())

	content.Title = "  "
	assert.Equal(t, "host-header-attacks", content.DisplayTitle())
}

func TestCourseCountLectures(t *testing.T) {
	crs := &Course{}
	assert.Equal(t, 0, crs.CountLectures())

	crs.Categories = CategoryList{
		{Name: "A", Lectures: []CourseLecture{{Title: "1"}, {Title: "2"}}},
		{Name: "B", Lectures: []CourseLecture{{Title: "3"}}},
		{Name: "C"},
	}
	assert.Equal(t, 3, crs.CountLectures())
}

// The embedded structure must survive a write/read round trip through the
// JSON column unchanged
func TestCategoryListRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	crs := &Course{
		Title: "Web Application Pentesting",
		Slug:  "webapp-pentesting",
		Categories: CategoryList{
			{
				Name:       "WebPentesting",
				Slug:       "webpentesting",
				OrderIndex: 0,
				Lectures: []CourseLecture{
					{Title: "Host Header Attacks", ContentRef: "12", OrderIndex: 0, DurationMinutes: 15, IsRequired: true},
				},
			},
		},
	}
	require.NoError(t, db.Create(crs).Error)

	var got Course
	require.NoError(t, db.First(&got, crs.ID).Error)
	require.Len(t, got.Categories, 1)
	require.Len(t, got.Categories[0].Lectures, 1)
	assert.Equal(t, crs.Categories[0].Lectures[0], got.Categories[0].Lectures[0])
}
