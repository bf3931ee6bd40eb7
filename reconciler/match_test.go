package reconciler

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
)

func TestTitlesMatch(t *testing.T) {
	cases := []struct {
		content string
		stub    string
		want    bool
	}{
		{"Host Header Attacks", "Host Header Attacks", true},
		{"host header attacks", "Host Header Attacks", true},
		{"Command Injection", "Command Injection Basics", true}, // substring either direction
		{"Command Injection Basics", "Command Injection", true},
		{"  SQL Injection  ", "sql injection", true},
		{"XSS", "CSRF", false},
		{"", "Host Header Attacks", false},
		{"Host Header Attacks", "", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, titlesMatch(tc.content, tc.stub), "%q vs %q", tc.content, tc.stub)
	}
}

func TestFindMatchCandidateSkipsLinkedStubs(t *testing.T) {
	cat := &courseModels.CourseCategory{
		Name: "WebPentesting",
		Lectures: []courseModels.CourseLecture{
			{Title: "SQL Injection", ContentRef: "12", OrderIndex: 0},
			{Title: "SQL Injection Advanced", OrderIndex: 1},
		},
	}

	// The already-linked stub at order 0 is not a candidate
	assert.Equal(t, 1, findMatchCandidate(cat, "SQL Injection"))
}

func TestFindMatchCandidatePrefersLowestOrder(t *testing.T) {
	cat := &courseModels.CourseCategory{
		Name: "WebPentesting",
		Lectures: []courseModels.CourseLecture{
			{Title: "Command Injection Basics", OrderIndex: 1},
			{Title: "Command Injection", OrderIndex: 0},
		},
	}

	// Array position does not matter, order does
	assert.Equal(t, 1, findMatchCandidate(cat, "Command Injection"))
}

func TestFindEmbeddedCategoryByNameOrSlug(t *testing.T) {
	crs := &courseModels.Course{
		Categories: courseModels.CategoryList{
			{Name: "WebPentesting", Slug: "webpentesting", OrderIndex: 0},
			{Name: "Network Security", Slug: "network-security", OrderIndex: 1},
		},
	}

	assert.Equal(t, 0, findEmbeddedCategory(crs, "webpentesting", ""))
	assert.Equal(t, 0, findEmbeddedCategory(crs, "", "WEBPENTESTING"))
	assert.Equal(t, 1, findEmbeddedCategory(crs, "NETWORK SECURITY", "no-such-slug"))
	assert.Equal(t, -1, findEmbeddedCategory(crs, "Cryptography", "cryptography"))
	assert.Equal(t, -1, findEmbeddedCategory(crs, "", ""))
}

func TestNextCategoryOrder(t *testing.T) {
	crs := &courseModels.Course{}
	assert.Equal(t, 0, nextCategoryOrder(crs))

	crs.Categories = courseModels.CategoryList{
		{Name: "A", OrderIndex: 0},
		{Name: "B", OrderIndex: 3}, // sparse orders from manual edits
	}
	assert.Equal(t, 4, nextCategoryOrder(crs))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "host-header-attacks", slugify("Host Header Attacks"))
	assert.Equal(t, "sql-injection-101", slugify("  SQL Injection 101! "))
	assert.Equal(t, "xss", slugify("XSS"))
}
