package route

import "context"

// Params maps parameter names to the values extracted from a request path.
type Params map[string]string

// Get returns the value of the named parameter.
func (p Params) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// bind runs while the match unwinds, deepest segment first, so a
// parameter name used twice in one route keeps the value of its last
// occurrence.
func (p Params) bind(name, value string) {
	if _, ok := p[name]; !ok {
		p[name] = value
	}
}

type paramsKey struct{}

// WithParams returns a copy of ctx carrying params.
func WithParams(ctx context.Context, params Params) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

// ParamsFromContext returns the params stored by WithParams.
// It never returns nil.
func ParamsFromContext(ctx context.Context) Params {
	if p, ok := ctx.Value(paramsKey{}).(Params); ok {
		return p
	}
	return Params{}
}

// Param returns the named parameter of the route matched for ctx.
func Param(ctx context.Context, name string) string {
	return ParamsFromContext(ctx)[name]
}
