package session

import "sync"

// Route is a client view path.
type Route string

const (
	RouteMain     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
)

// Protected reports whether r requires a logged-in session.
func (r Route) Protected() bool {
	return r == RouteMain
}

// Router tracks the current view. Protected routes resolve to the login view
// while the guard reports logged out.
type Router struct {
	mu      sync.Mutex
	current Route
	guard   func() bool
}

// NewRouter starts at start, resolved through guard. A nil guard allows
// every route.
func NewRouter(start Route, guard func() bool) *Router {
	r := &Router{guard: guard}
	r.current = r.Resolve(start)
	return r
}

// Resolve returns where a request for route lands.
func (r *Router) Resolve(route Route) Route {
	r.mu.Lock()
	guard := r.guard
	r.mu.Unlock()
	if route.Protected() && guard != nil && !guard() {
		return RouteLogin
	}
	return route
}

// Navigate moves to route, redirecting through the guard, and returns the
// route actually shown.
func (r *Router) Navigate(route Route) Route {
	resolved := r.Resolve(route)
	r.mu.Lock()
	r.current = resolved
	r.mu.Unlock()
	return resolved
}

// Current returns the shown route.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
