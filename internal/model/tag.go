package model

import "regexp"

// MaxTagNameLength is the maximum length for tag names and slugs.
const MaxTagNameLength = 200

// hexColorRegex validates HEX color values like #49B64E.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag is a label attached to recipes for categorization and filtering.
type Tag struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
	Slug  *string `json:"slug"`
}

// ValidHexColor reports whether s is a #RRGGBB color value.
func ValidHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}
