package reconciler

import (
	"log"
	"regexp"
	"strings"

	courseModels "lms/models/course"
)

// titlesMatch reports whether a content title and a lecture stub title refer
// to the same lecture: case-insensitive substring match in either direction.
func titlesMatch(contentTitle, stubTitle string) bool {
	a := strings.ToLower(strings.TrimSpace(contentTitle))
	b := strings.ToLower(strings.TrimSpace(stubTitle))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// findLinkedLecture returns the category and lecture index of the stub whose
// content reference already points at one of the given refs (row id string or
// filename), or -1, -1 when the content is not yet reachable from the course.
func findLinkedLecture(crs *courseModels.Course, refs ...string) (int, int) {
	for ci := range crs.Categories {
		for li := range crs.Categories[ci].Lectures {
			ref := crs.Categories[ci].Lectures[li].ContentRef
			if ref == "" {
				continue
			}
			for _, want := range refs {
				if want != "" && ref == want {
					return ci, li
				}
			}
		}
	}
	return -1, -1
}

// findEmbeddedCategory locates the embedded category matching a standalone
// category by slug or case-insensitive name. Duplicate names should not
// happen; when they do, the first by array position wins and the ambiguity is
// logged rather than treated as an error.
func findEmbeddedCategory(crs *courseModels.Course, name, slug string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	slug = strings.ToLower(strings.TrimSpace(slug))

	found := -1
	matches := 0
	for i := range crs.Categories {
		catName := strings.ToLower(strings.TrimSpace(crs.Categories[i].Name))
		catSlug := strings.ToLower(strings.TrimSpace(crs.Categories[i].Slug))
		if (slug != "" && catSlug == slug) || (name != "" && catName == name) {
			matches++
			if found < 0 {
				found = i
			}
		}
	}

	if matches > 1 {
		log.Printf("[RECONCILER] Course %d has %d embedded categories matching %q; using the first",
			crs.ID, matches, name)
	}
	return found
}

// findMatchCandidate returns the index of the unlinked lecture stub in the
// category whose title fuzzy-matches the content title. When several stubs
// match, the one with the lowest order wins (first-authored wins).
func findMatchCandidate(cat *courseModels.CourseCategory, contentTitle string) int {
	best := -1
	for i := range cat.Lectures {
		if cat.Lectures[i].ContentRef != "" {
			continue
		}
		if !titlesMatch(contentTitle, cat.Lectures[i].Title) {
			continue
		}
		if best < 0 || cat.Lectures[i].OrderIndex < cat.Lectures[best].OrderIndex {
			best = i
		}
	}
	return best
}

// nextCategoryOrder returns the order value for a newly synthesized category
func nextCategoryOrder(crs *courseModels.Course) int {
	next := 0
	for i := range crs.Categories {
		if crs.Categories[i].OrderIndex >= next {
			next = crs.Categories[i].OrderIndex + 1
		}
	}
	return next
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify builds a URL-safe slug for lecture stubs created by the reconciler
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
