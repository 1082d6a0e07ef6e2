package route

import (
	"fmt"
	"log/slog"
	"strings"
)

// Option is a function that sets a router option.
type Option func(*Router) error

// Join returns an Option that joins multiple options.
func Join(opts ...Option) Option {
	return func(r *Router) error {
		for _, opt := range opts {
			if err := opt(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// ConflictMode selects how overlapping registrations are treated.
type ConflictMode string

const (
	// ConflictLenient keeps going: merges let the last source win and a
	// differently named parameter keeps the first name.
	ConflictLenient ConflictMode = "lenient"
	// ConflictStrict reports overlaps as errors.
	ConflictStrict ConflictMode = "strict"
)

func (m ConflictMode) normalize() ConflictMode {
	if m == ConflictStrict {
		return ConflictStrict
	}
	return ConflictLenient
}

func (m ConflictMode) String() string {
	return string(m.normalize())
}

// BasePath returns an Option that prefixes every route registered on the
// router with path. An empty path disables the prefix.
func BasePath(path string) Option {
	return func(r *Router) error {
		normalized, err := normalizeBasePath(path)
		if err != nil {
			return err
		}
		r.basePath = normalized
		return nil
	}
}

func normalizeBasePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w %q: must start with /", ErrInvalidBasePath, path)
	}
	if path == "/" {
		return "", fmt.Errorf("%w %q: must not be /", ErrInvalidBasePath, path)
	}
	return strings.TrimRight(path, "/"), nil
}

// WithMatcher returns an Option that registers a named matcher.
func WithMatcher(name string, fn MatcherFunc) Option {
	return func(r *Router) error {
		return r.Matcher(name, fn)
	}
}

// WithLogger returns an Option that sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// MergeConflicts returns an Option that sets how Merge treats handlers
// registered for the same route and method on both sides.
func MergeConflicts(mode ConflictMode) Option {
	return func(r *Router) error {
		r.mergeConflicts = mode.normalize()
		return nil
	}
}

// ParamConflicts returns an Option that sets how Route treats a parameter
// whose name differs from the one already registered at its position,
// as with "/a/:foo" followed by "/a/:bar".
func ParamConflicts(mode ConflictMode) Option {
	return func(r *Router) error {
		r.paramConflicts = mode.normalize()
		return nil
	}
}

// FromConfig returns an Option applying c.
func FromConfig(c Config) Option {
	return func(r *Router) error {
		if err := c.Validate(); err != nil {
			return err
		}
		return Join(
			BasePath(c.BasePath),
			MergeConflicts(c.MergeConflicts),
			ParamConflicts(c.ParamConflicts),
		)(r)
	}
}
