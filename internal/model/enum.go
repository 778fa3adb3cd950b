package model

import (
	"fmt"
	"strings"
)

// enumName returns names[v] or a diagnostic form for out-of-range values.
func enumName[T ~uint8](names []string, kind string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

// parseEnum resolves s case-insensitively against names. Index 0 is the
// unspecified value and never matches.
func parseEnum[T ~uint8](names []string, kind, s string) (T, error) {
	s = strings.TrimSpace(s)
	for i := 1; i < len(names); i++ {
		if strings.EqualFold(names[i], s) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s: %q", kind, s)
}

func validateEnum[T ~uint8](names []string, kind string, v T) error {
	if v == 0 || int(v) >= len(names) {
		return fmt.Errorf("invalid %s: %d", kind, v)
	}
	return nil
}
