package loader

import "fmt"

// ParseError reports a malformed line in a text description.
type ParseError struct {
	Line   int // 1-based line number in the source, 0 when not line specific
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Reason)
}
