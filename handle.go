package route

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HandlerOption configures the http.Handler built by Handler.
type HandlerOption func(*dispatcher) error

// NotFound returns a HandlerOption that sets the handler for paths no route matches.
func NotFound(h http.Handler) HandlerOption {
	return func(d *dispatcher) error {
		d.notFound = h
		return nil
	}
}

// HandleError returns a HandlerOption that sets the error handler for
// request paths that cannot be decoded.
func HandleError(handleErr func(ctx context.Context, w http.ResponseWriter, err error)) HandlerOption {
	return func(d *dispatcher) error {
		d.handleErr = handleErr
		return nil
	}
}

// WithMetrics returns a HandlerOption that records request counts and
// latencies per route pattern in reg.
func WithMetrics(reg prometheus.Registerer) HandlerOption {
	return func(d *dispatcher) error {
		m, err := newMetrics(reg)
		if err != nil {
			return err
		}
		d.metrics = m
		return nil
	}
}

// Handler returns an http.HandlerFunc serving the routes of r.
//
// Route handlers must be an http.Handler or a
// func(http.ResponseWriter, *http.Request); hooks must be a
// func(http.Handler) http.Handler. The hooks of a method wrap its handler
// so that the first hook runs first. Params of the matched route are
// available through ParamsFromContext.
//
// Routes registered on r after Handler returns are matched but have no
// handlers.
func Handler(r *Router, opts ...HandlerOption) (http.HandlerFunc, error) {
	d := &dispatcher{
		router:   r,
		notFound: http.NotFoundHandler(),
		chains:   make(map[*Store]map[string]http.Handler),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	for _, info := range r.Routes() {
		chains, err := buildChains(info.Store)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", info.Pattern, err)
		}
		d.chains[info.Store] = chains
	}
	return d.ServeHTTP, nil
}

type dispatcher struct {
	router    *Router
	notFound  http.Handler
	handleErr func(context.Context, http.ResponseWriter, error)
	metrics   *metrics
	chains    map[*Store]map[string]http.Handler
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path, err := splitPath(r.URL)
	if err != nil {
		d.metrics.observe("", r.Method, outcomeBadRequest, start)
		d.HandleErr(r.Context(), w, err)
		return
	}

	match := d.router.find(path)
	if match.Store == nil {
		d.metrics.observe("", r.Method, outcomeNotFound, start)
		d.notFound.ServeHTTP(w, r)
		return
	}

	handler, ok := selectChain(d.chains[match.Store], r.Method)
	if !ok {
		d.metrics.observe(match.Pattern, r.Method, outcomeMethodNotAllowed, start)
		w.Header().Set("Allow", strings.Join(allowed(match.Store), ", "))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handler.ServeHTTP(w, r.WithContext(WithParams(r.Context(), match.Params)))
	d.metrics.observe(match.Pattern, r.Method, outcomeMatched, start)
}

func (d *dispatcher) HandleErr(ctx context.Context, w http.ResponseWriter, err error) {
	if d.handleErr != nil {
		d.handleErr(ctx, w, err)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func selectChain(chains map[string]http.Handler, method string) (http.Handler, bool) {
	if h, ok := chains[method]; ok {
		return h, true
	}
	if method == http.MethodHead {
		if h, ok := chains[http.MethodGet]; ok {
			return h, true
		}
	}
	h, ok := chains[MethodFallback]
	return h, ok
}

func allowed(store *Store) []string {
	methods := store.Methods()
	out := methods[:0]
	for _, m := range methods {
		if m != MethodFallback {
			out = append(out, m)
		}
	}
	return out
}

func buildChains(store *Store) (map[string]http.Handler, error) {
	chains := make(map[string]http.Handler)
	for _, method := range store.Methods() {
		raw, _ := store.Handler(method)
		handler, ok := asHTTPHandler(raw)
		if !ok {
			return nil, fmt.Errorf("%s handler %T: %w", method, raw, ErrUnsupportedHandler)
		}
		hooks, err := store.Hooks(method)
		if err != nil {
			return nil, err
		}
		for i := len(hooks) - 1; i >= 0; i-- {
			hook, ok := hooks[i].(func(http.Handler) http.Handler)
			if !ok {
				return nil, fmt.Errorf("%s hook %T: %w", method, hooks[i], ErrUnsupportedHandler)
			}
			handler = hook(handler)
		}
		chains[method] = handler
	}
	return chains, nil
}

func asHTTPHandler(v any) (http.Handler, bool) {
	switch h := v.(type) {
	case http.Handler:
		return h, true
	case func(http.ResponseWriter, *http.Request):
		return http.HandlerFunc(h), true
	default:
		return nil, false
	}
}

// splitPath returns the non-empty segments of link. Escaped slashes stay
// inside their segment.
func splitPath(link *url.URL) ([]string, error) {
	if link.RawPath == "" {
		return splitSegments(link.Path), nil
	}
	path := splitSegments(link.RawPath)
	for i, p := range path {
		s, err := url.PathUnescape(p)
		if err != nil {
			return nil, fmt.Errorf("url.PathUnescape: %w", err)
		}
		path[i] = s
	}
	return path, nil
}
