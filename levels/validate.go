package levels

import (
	"fmt"
	"strings"
)

// ValidationError collects every authoring problem found while loading a
// level so they can be fixed in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any problem was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Problems) > 0
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "levels: invalid level"
	}
	return "levels: invalid level: " + strings.Join(e.Problems, "; ")
}
