package slack

import (
	"strings"
)

const (
	COLOR_GOOD    string = "#36a64f"
	COLOR_WARNING string = "#daa038"
	COLOR_DANGER  string = "#a30200"
)

// ResolveColor maps a color keyword (good, success, warning, danger, error) or a "#RRGGBB" hex
// string to a lowercase "#rrggbb" value. Matching is case-insensitive.
func ResolveColor(color string) (string, error) {

	lower := strings.ToLower(color)

	switch lower {
	case "good", "success":
		return COLOR_GOOD, nil
	case "warning":
		return COLOR_WARNING, nil
	case "danger", "error":
		return COLOR_DANGER, nil
	}

	if !isHexColor(lower) {
		return "", &InvalidColorError{Color: color}
	}

	return lower, nil
}

func isHexColor(str string) bool {

	if len(str) != 7 || str[0] != '#' {
		return false
	}

	for _, c := range str[1:] {

		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}

	return true
}
