package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxQuadrants is the number of quadrants of a full circle.
const MaxQuadrants = 4

const (
	// MaxRadius bounds the circle table, which holds about 5.7 points per
	// pixel of radius.
	MaxRadius = 100_000
	// MaxViewport bounds either side of the viewport.
	MaxViewport = 16_384
)

// ValidateRadius rejects non-positive circle radii and radii above MaxRadius.
func ValidateRadius(radius int) error {
	if radius <= 0 {
		return New(ErrCodeInvalidRadius, "radius must be positive, got %d", radius)
	}
	if radius > MaxRadius {
		return New(ErrCodeInvalidRadius, "radius must be at most %d, got %d", MaxRadius, radius)
	}
	return nil
}

// ValidateQuadrants accepts 0 (pick from the origin) through MaxQuadrants.
func ValidateQuadrants(n int) error {
	if n < 0 || n > MaxQuadrants {
		return New(ErrCodeInvalidQuadrants, "quadrants must be between 0 and %d, got %d", MaxQuadrants, n)
	}
	return nil
}

// ValidateViewport checks that the viewport has an area no side of which
// exceeds MaxViewport and that the top padding leaves some of it visible.
func ValidateViewport(width, height, paddingTop int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidViewport, "viewport must have a positive size, got %dx%d", width, height)
	}
	if width > MaxViewport || height > MaxViewport {
		return New(ErrCodeInvalidViewport, "viewport must be at most %dx%d, got %dx%d", MaxViewport, MaxViewport, width, height)
	}
	if paddingTop < 0 || paddingTop >= height {
		return New(ErrCodeInvalidViewport, "padding top %d out of range [0, %d)", paddingTop, height)
	}
	return nil
}

// ValidateFormats checks every requested output format against the valid set.
// An empty list is rejected.
func ValidateFormats(formats []string, valid []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !slices.Contains(valid, f) {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of: %s)", f, strings.Join(valid, ", "))
		}
	}
	return nil
}

// ValidateLabel validates a capsule label for display in terminals and SVG.
//
// Validation rules:
//   - Maximum length of 64 characters
//   - No control characters
//   - No markup delimiters (< and >)
func ValidateLabel(label string) error {
	const maxLabelLength = 64
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}
	if strings.ContainsAny(label, "<>") {
		return New(ErrCodeInvalidLabel, "label cannot contain markup: %q", label)
	}
	return nil
}
