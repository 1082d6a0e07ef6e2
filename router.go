// Package route implements a path trie router. Patterns are made of
// static segments, parameters (":id"), typed parameters (":id=number"),
// prefixed parameters ("file-:name") and a trailing wildcard ("*rest").
//
// Routes are registered with Route, which returns the Store to attach
// handlers to. Registration must finish before Find is called
// concurrently; Find itself never mutates the router.
package route

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Router owns the route trie, the matcher registry and the base path.
type Router struct {
	root     node
	matchers matchers
	basePath string

	mergeConflicts ConflictMode
	paramConflicts ConflictMode

	logger *slog.Logger
}

// Match is the result of Find. Store is nil when no route matched.
type Match struct {
	Store   *Store
	Params  Params
	Pattern string
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Pattern string   `json:"pattern" yaml:"pattern"`
	Methods []string `json:"methods" yaml:"methods"`
	Store   *Store   `json:"-" yaml:"-"`
}

// New creates a Router configured by opts.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		matchers: builtinMatchers(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// BasePath returns the prefix applied to every route registered on r.
func (r *Router) BasePath() string {
	return r.basePath
}

// Matcher registers or replaces the named matcher.
func (r *Router) Matcher(name string, fn MatcherFunc) error {
	if err := r.matchers.set(name, fn); err != nil {
		return err
	}
	r.logger.Debug("matcher registered", slog.String("matcher", name))
	return nil
}

// Route registers path and returns its Store. Registering the same path
// again returns the same Store.
func (r *Router) Route(path string) (*Store, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("route %q: %w", path, ErrInvalidPath)
	}
	pattern := r.prefixed(path)
	segments := splitSegments(pattern)

	current := &r.root
	for i, s := range segments {
		seg := parseSegment(s)
		switch seg.kind {
		case staticSegment:
			current = current.staticChild(seg.raw)
		case matcherSegment:
			if _, ok := r.matchers[seg.matcher]; !ok {
				return nil, fmt.Errorf("route %q: %w %q", pattern, ErrUnknownMatcher, seg.matcher)
			}
			current = current.matcherChild(seg)
		case mixedSegment:
			current = current.mixedChild(seg)
		case dynamicSegment:
			if err := r.checkParamName(pattern, current.dynamic, seg.param); err != nil {
				return nil, err
			}
			current = current.dynamicChild(seg.param)
		case wildcardSegment:
			if i != len(segments)-1 {
				return nil, fmt.Errorf("route %q: %w", pattern, ErrWildcardPosition)
			}
			if err := r.checkParamName(pattern, current.wildcard, seg.param); err != nil {
				return nil, err
			}
			current = current.wildcardChild(seg.param)
		}
	}

	if current.store == nil {
		current.store = newStore()
		current.pattern = pattern
		r.logger.Debug("route registered", slog.String("pattern", pattern))
	}
	return current.store, nil
}

func (r *Router) prefixed(path string) string {
	switch {
	case r.basePath == "":
		return path
	case path == "/":
		return r.basePath
	default:
		return r.basePath + path
	}
}

func (r *Router) checkParamName(pattern string, existing *node, name string) error {
	if existing == nil || existing.paramName == name {
		return nil
	}
	if r.paramConflicts == ConflictStrict {
		return fmt.Errorf("route %q: %w: %q already registered as %q", pattern, ErrParamConflict, name, existing.paramName)
	}
	r.logger.Warn("parameter name ignored, position already bound",
		slog.String("pattern", pattern),
		slog.String("param", name),
		slog.String("bound", existing.paramName),
	)
	return nil
}

// Find returns the route matching path. A path that matches no route
// yields a Match with a nil Store and no error.
//
// A trailing wildcard also matches when nothing is left for it: with
// "/files/*rest" registered and no route at "/files", Find("/files")
// returns the wildcard route with rest bound to "".
func (r *Router) Find(path string) (Match, error) {
	if !strings.HasPrefix(path, "/") {
		return Match{Params: Params{}}, fmt.Errorf("find %q: %w", path, ErrInvalidPath)
	}
	return r.find(splitSegments(path)), nil
}

func (r *Router) find(segments []string) Match {
	params := Params{}
	hit := r.root.match(segments, params, r.matchers)
	if hit == nil {
		return Match{Params: Params{}}
	}
	return Match{Store: hit.store, Params: params, Pattern: hit.pattern}
}

// Routes lists every registered route.
func (r *Router) Routes() []RouteInfo {
	var routes []RouteInfo
	r.root.walk(func(n *node) {
		routes = append(routes, RouteInfo{
			Pattern: n.pattern,
			Methods: n.store.Methods(),
			Store:   n.store,
		})
	})
	return routes
}
