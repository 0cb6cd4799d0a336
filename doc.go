// Package farmacia provides the session and authorization core for clients of
// the pharmacy management API: bearer-credential persistence, token decoding
// into a Principal, policy-based navigation guards, and the resource models the
// synchronization layer reconciles against the remote service.
//
// Session lifecycle:
//   - SessionManager owns the single in-process session. It starts in the
//     initializing state, resolves exactly once to anonymous or authenticated
//     after reading the CredentialStore, and from then on transitions only
//     through Login and Logout. Every consumer reads the current token and
//     Principal through it; nothing else touches persistence.
//   - CredentialStore implementations (memory, file, sqlite via the store
//     package) hold the one durable copy of the token. Storage failures degrade
//     to an anonymous session, they never surface as user-facing errors.
//
// Navigation guards:
//   - RouteGuard evaluates a policy (authenticated-only or admin-only) against
//     the current session state and yields a pure Decision: wait while the
//     initial token check is pending, redirect to the login entry point when
//     anonymous, redirect to the authenticated landing page when authorized but
//     not an admin, otherwise render.
//
// Activity sinks:
//   - ActivitySink is a best-effort audit emitter used by SessionManager to
//     describe login, logout, and session restore events. Sink errors are
//     logged and never block the session transition.
package farmacia
