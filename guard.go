package farmacia

// GuardPolicy selects which sessions may pass a RouteGuard.
type GuardPolicy string

const (
	// PolicyAuthenticated admits any authenticated session.
	PolicyAuthenticated GuardPolicy = "authenticated"
	// PolicyAdmin admits only sessions whose principal carries the admin role.
	PolicyAdmin GuardPolicy = "admin"
)

// GuardRoutes are the redirect targets a guard may decide on.
type GuardRoutes struct {
	// Login is where anonymous sessions are sent.
	Login string
	// Landing is where authenticated-but-unauthorized sessions are sent. They
	// are logged in, so sending them back to login would be wrong.
	Landing string
}

// Decision is the outcome of evaluating a guard against the current session.
// Exactly one of Pending, Allow, or a non-empty RedirectTo holds.
type Decision struct {
	// Pending means the initial token check has not resolved yet: render a
	// neutral waiting indicator and make no redirect decision. This avoids the
	// flash-redirect race at startup.
	Pending bool
	// Allow means render the wrapped view unchanged.
	Allow bool
	// RedirectTo is the navigation target when the session may not pass.
	RedirectTo string
	// ReplaceHistory indicates the redirect must replace the current history
	// entry so back-navigation cannot land on a blocked view.
	ReplaceHistory bool
}

// GuardOption customizes RouteGuard construction.
type GuardOption func(*RouteGuard)

// WithGuardRoutes overrides the default redirect targets.
func WithGuardRoutes(routes GuardRoutes) GuardOption {
	return func(g *RouteGuard) {
		if routes.Login != "" {
			g.routes.Login = routes.Login
		}
		if routes.Landing != "" {
			g.routes.Landing = routes.Landing
		}
	}
}

// RouteGuard wraps a protected view with a policy. Evaluate is pure and
// synchronous; callers re-run it whenever the session changes (wire
// SessionManager.OnChange to the view layer's re-render).
type RouteGuard struct {
	session Session
	policy  GuardPolicy
	routes  GuardRoutes
}

// NewRouteGuard returns a guard for the given policy with default targets
// /login and /dashboard.
func NewRouteGuard(session Session, policy GuardPolicy, opts ...GuardOption) *RouteGuard {
	g := &RouteGuard{
		session: session,
		policy:  policy,
		routes: GuardRoutes{
			Login:   "/login",
			Landing: "/dashboard",
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Evaluate decides what to do with the guarded view for the current session
// state.
func (g *RouteGuard) Evaluate() Decision {
	if g.session.Loading() {
		return Decision{Pending: true}
	}

	if _, ok := g.session.CurrentPrincipal(); !ok {
		return Decision{RedirectTo: g.routes.Login, ReplaceHistory: true}
	}

	if g.policy == PolicyAdmin && !g.session.IsAdmin() {
		return Decision{RedirectTo: g.routes.Landing, ReplaceHistory: true}
	}

	return Decision{Allow: true}
}
