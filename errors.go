package route

import "errors"

var (
	// ErrInvalidPath indicates that a path does not start with "/".
	ErrInvalidPath = errors.New("path must start with /")

	// ErrInvalidBasePath indicates that a configured base path is malformed.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrInvalidMatcher indicates that a matcher has no predicate or an unusable name.
	ErrInvalidMatcher = errors.New("invalid matcher")

	// ErrUnknownMatcher indicates that a route references a matcher that is not registered.
	ErrUnknownMatcher = errors.New("unknown matcher")

	// ErrWildcardPosition indicates that a wildcard segment is not the last segment of a route.
	ErrWildcardPosition = errors.New("wildcard must be the last segment")

	// ErrParamConflict indicates two routes naming the same parameter position differently.
	ErrParamConflict = errors.New("conflicting parameter name")

	// ErrMergeConflict indicates that a merge would overwrite an existing handler.
	ErrMergeConflict = errors.New("conflicting handler")

	// ErrMergeSelf indicates that a router was merged into itself.
	ErrMergeSelf = errors.New("router merged into itself")

	// ErrInvalidMethod indicates that a method token is not upper case.
	ErrInvalidMethod = errors.New("invalid method")

	// ErrMethodNotAllowed indicates that an upper case method token is not supported.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrMissingMethod indicates that no method was given.
	ErrMissingMethod = errors.New("missing method")

	// ErrMissingHandler indicates that a builder was called without a handler.
	ErrMissingHandler = errors.New("missing handler")

	// ErrUnsupportedHandler indicates a handler or hook the HTTP adapter cannot run.
	ErrUnsupportedHandler = errors.New("unsupported handler type")
)
