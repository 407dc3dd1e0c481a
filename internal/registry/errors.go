package registry

import "errors"

// Sentinel errors for the registry's failure modes. Callers classify with
// errors.Is; the web layer maps them to HTTP status codes.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)
