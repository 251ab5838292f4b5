package session

import "fmt"

type Reason int

const (
	NotANumber Reason = iota + 1
	OutOfRange
)

func (r Reason) String() string {
	switch r {
	case NotANumber:
		return "not_a_number"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// ValidationError rejects a mood score. The history is left untouched.
type ValidationError struct {
	Reason Reason
	Input  string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case NotANumber:
		return "Invalid input! Please enter a number for the mood score."
	case OutOfRange:
		return "Invalid mood score! Must be between 1 and 10."
	default:
		return fmt.Sprintf("invalid mood score %q", e.Input)
	}
}
