package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugStrip    = regexp.MustCompile("[^a-z0-9-]")
	slugCollapse = regexp.MustCompile("-+")
)

// Slugify turns a category name into a URL-friendly slug.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateGiftCardCode mints a short human-readable code printed on the
// physical card, e.g. "GC-3F9A1B2C".
func GenerateGiftCardCode() string {
	return "GC-" + strings.ToUpper(uuid.New().String()[:8])
}
