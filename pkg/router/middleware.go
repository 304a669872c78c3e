package router

// Middleware wraps a handler. It may inspect or replace the context before
// calling next, adjust the returned page, or return a page without calling
// next at all.
type Middleware func(next Handler) Handler

// Compose builds a handler chain from middleware and a final handler.
// Middleware is executed in order (first to last), with the handler at the end.
func Compose(handler Handler, mw ...Middleware) Handler {
	// Build chain from end to start
	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			chain = mw[i](chain)
		}
	}
	return chain
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return func(next Handler) Handler {
		return Compose(next, middleware...)
	}
}

// Skip bypasses mw when condition is true.
func Skip(condition func(ctx *RequestContext) bool, mw Middleware) Middleware {
	return func(next Handler) Handler {
		wrapped := mw(next)
		return func(ctx *RequestContext) Page {
			if condition(ctx) {
				return next(ctx)
			}
			return wrapped(ctx)
		}
	}
}

// Only runs mw only when condition is true.
func Only(condition func(ctx *RequestContext) bool, mw Middleware) Middleware {
	return Skip(func(ctx *RequestContext) bool { return !condition(ctx) }, mw)
}
