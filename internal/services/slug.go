package services

import (
	"regexp"
	"strings"
)

// maxSlugLength caps generated slugs to the column size
const maxSlugLength = 300

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL slug from a title: lowercase, strip everything but
// letters, digits, spaces and dashes, collapse whitespace into dashes
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}
