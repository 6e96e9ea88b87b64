package errors

import "fmt"

// Status is the single scalar error code carried by an execution context and
// by every *Error returned from the runtime.
type Status uint32

const (
	// StatusSuccess indicates no failure.
	StatusSuccess Status = iota
	// StatusArgumentInvalid indicates an argument or precondition violation.
	StatusArgumentInvalid
	// StatusAllocationFailed indicates storage could not be obtained.
	StatusAllocationFailed
	// StatusExists indicates a duplicate registration.
	StatusExists
	// StatusNotExists indicates a lookup miss.
	StatusNotExists
	// StatusArgumentTypeInvalid indicates an operand of the wrong type.
	StatusArgumentTypeInvalid
	// StatusDivisionByZero indicates a zero divisor.
	StatusDivisionByZero
	// StatusStackCorruption indicates a stack-discipline violation.
	StatusStackCorruption
	// StatusEnvironmentFailed indicates start-up, shutdown or collector failure.
	StatusEnvironmentFailed
	// StatusNumericOverflow indicates a result that cannot be narrowed safely.
	StatusNumericOverflow
	// StatusConversionFailed indicates malformed input to a codec.
	StatusConversionFailed
	// StatusOperationInvalid indicates an operation the receiver does not support.
	StatusOperationInvalid
)

// String returns a stable label for the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusArgumentInvalid:
		return "argument invalid"
	case StatusAllocationFailed:
		return "allocation failed"
	case StatusExists:
		return "exists"
	case StatusNotExists:
		return "not exists"
	case StatusArgumentTypeInvalid:
		return "argument type invalid"
	case StatusDivisionByZero:
		return "division by zero"
	case StatusStackCorruption:
		return "stack corruption"
	case StatusEnvironmentFailed:
		return "environment failed"
	case StatusNumericOverflow:
		return "numeric overflow"
	case StatusConversionFailed:
		return "conversion failed"
	case StatusOperationInvalid:
		return "operation invalid"
	default:
		return fmt.Sprintf("status(%d)", uint32(s))
	}
}

// Error makes a bare Status usable as an errors.Is target.
func (s Status) Error() string {
	return s.String()
}
