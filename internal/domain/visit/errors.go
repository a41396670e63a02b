package visit

import "errors"

// Visit lifecycle errors. At most one START and one END visit may exist per
// shift, and an END requires a prior START.
var (
	ErrAlreadyStarted = errors.New("visit already started")
	ErrNotStarted     = errors.New("visit has not been started")
	ErrAlreadyEnded   = errors.New("visit already ended")
)
