package exporter

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	apperrors "xlexport/internal/errors"
)

const (
	// Excel refuses sheet names longer than 31 characters
	maxSheetNameLength = 31
	colWidthPadding    = 6
	maxColWidth        = 255
)

// characters excelize rejects in sheet names
const invalidSheetNameChars = `:\/?*[]`

// Friendlize turns a snake_case identifier into a human-readable title,
// e.g. "median_income" becomes "Median Income".
func Friendlize(s string) string {
	parts := strings.Split(strings.ToLower(s), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// truncateSheetName shortens a name to the Excel sheet-name limit
func truncateSheetName(s string) string {
	r := []rune(s)
	if len(r) <= maxSheetNameLength {
		return s
	}
	return string(r[:maxSheetNameLength])
}

// validateSheetName checks a resolved sheet name against Excel constraints
func validateSheetName(name string) error {
	if name == "" {
		return apperrors.NewValidationError("sheet name must not be empty", nil)
	}
	if utf8.RuneCountInString(name) > maxSheetNameLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("sheet name %q exceeds %d characters", name, maxSheetNameLength), nil)
	}
	if strings.ContainsAny(name, invalidSheetNameChars) {
		return apperrors.NewValidationError(
			fmt.Sprintf("sheet name %q contains an invalid character (%s)", name, invalidSheetNameChars), nil)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return apperrors.NewValidationError(
			fmt.Sprintf("sheet name %q must not begin or end with an apostrophe", name), nil)
	}
	return nil
}

// resolveSheetNames applies tab-name overrides, the length limit and the
// friendly-name transformation, then checks the results for validity and
// uniqueness. Excel treats sheet names case-insensitively, so "Data" and
// "DATA" collide.
func resolveSheetNames(sheetNames []string, opts *Options) ([]string, error) {
	resolved := make([]string, len(sheetNames))
	seen := make(map[string]int, len(sheetNames))

	for i, name := range sheetNames {
		if override, ok := opts.TabNames[name]; ok {
			name = override
		}
		name = truncateSheetName(name)
		if opts.FriendlyNames {
			name = truncateSheetName(Friendlize(name))
		}
		if err := validateSheetName(name); err != nil {
			return nil, err
		}

		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("duplicate sheet name %q (positions %d and %d)", name, prev, i), nil)
		}
		seen[key] = i
		resolved[i] = name
	}
	return resolved, nil
}

// cellWidth estimates the display width of a cell value in characters
func cellWidth(v interface{}) int {
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(val)
	case time.Time:
		return len(time.DateOnly)
	default:
		return utf8.RuneCountInString(fmt.Sprint(val))
	}
}
