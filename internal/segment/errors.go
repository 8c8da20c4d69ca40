package segment

import "fmt"

// WindowError reports a match window that closed but could not be resolved.
// The window's samples were discarded.
type WindowError struct {
	Key      string
	Start    float64
	End      float64
	Samples  int
	Shutdown bool
	Err      error
}

func (e *WindowError) Error() string {
	key := e.Key
	if key == "" {
		key = "unkeyed"
	}
	return fmt.Sprintf("resolve match %s (%d samples, %.1f-%.1f): %v", key, e.Samples, e.Start, e.End, e.Err)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}
