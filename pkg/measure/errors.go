package measure

import "fmt"

// PanicError reports a check that panicked instead of returning a Result.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("check panicked: %v", e.Value)
}
