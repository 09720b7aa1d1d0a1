package util

import (
	"strconv"
)

// ParseUint parses a numeric path parameter. ok is false for anything that is not a positive id.
func ParseUint(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
