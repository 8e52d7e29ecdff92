package validation

import (
	"fmt"
	"regexp"
)

var (
	tagSlugRegex  = regexp.MustCompile(`^[a-z0-9-]{2,50}$`)
	tagColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ValidateTagSlug validates a tag slug as loaded from fixtures.
func ValidateTagSlug(slug string) error {
	if !tagSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 2-50 characters and contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}

// ValidateTagColor validates a hex color value like #49B64E.
func ValidateTagColor(color string) error {
	if !tagColorRegex.MatchString(color) {
		return fmt.Errorf("color must be a hex value like #49B64E")
	}
	return nil
}
