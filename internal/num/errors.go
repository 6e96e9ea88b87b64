package num

import "fmt"

// ParseError reports why numeric text was rejected and where.
type ParseError struct {
	Kind   ParseErrKind
	Offset int
}

// Error returns the failure category and the byte offset it was found at.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == ParseEmpty {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

// ParseErrKind classifies a ParseError.
type ParseErrKind uint8

const (
	ParseInvalid ParseErrKind = iota
	ParseEmpty
	ParseBadChar
	ParseNoDigits
)

// String returns the category label.
func (k ParseErrKind) String() string {
	switch k {
	case ParseEmpty:
		return "empty"
	case ParseBadChar:
		return "bad character"
	case ParseNoDigits:
		return "no digits"
	default:
		return "invalid"
	}
}
