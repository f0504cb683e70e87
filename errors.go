package main

import "errors"

// Error kinds from spec.md §7. The walker accumulates failures rather than
// aborting, and the flag projector skips packages that failed to load;
// run() maps the final accumulated state to a process exit code.
var (
	errNotFound        = errors.New("package not found")
	errInvalid         = errors.New("missing required property")
	errVersionMismatch = errors.New("version constraint not satisfied")
	errArgument        = errors.New("malformed argument")
)
