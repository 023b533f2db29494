package rest

// Status tags the point a login flow has reached.
type Status string

const (
	// StatusLoggedIn marks a completed login; resource calls are available.
	StatusLoggedIn Status = "logged_in"
	// StatusSelectClient means the backend requires the caller to pick
	// one of several sub-accounts before other operations are callable.
	// The session key is already valid for the selection call itself.
	StatusSelectClient Status = "select_client"
	// StatusInteractionRequired means the backend demands an answer to
	// a challenge (personal question, OTP) before login can complete.
	StatusInteractionRequired Status = "interaction_required"
	// StatusWrongCredentials is the terminal rejection signal. Login
	// methods convert it into a *WrongCredentialsError rather than
	// returning a session in this state.
	StatusWrongCredentials Status = "wrong_credentials"
)

// Session holds the state of one authentication flow: a status tag, an
// opaque backend-issued key, and a back-reference to the dispatcher
// that resolves it into requests. It owns no connection and is meant
// for sequential single-goroutine use; the caller decides when a key
// has gone stale and simply abandons the value.
type Session struct {
	client *Client
	status Status
	key    string
}

// NewSession binds a fresh login outcome to its owning dispatcher.
func NewSession(client *Client, status Status, key string) Session {
	return Session{client: client, status: status, key: key}
}

// RestoreSession reattaches to a previously established key without
// validating it. A stale key surfaces as an unauthorized or
// invalid-key error on the first subsequent call, not here.
func RestoreSession(client *Client, key string) Session {
	return Session{client: client, status: StatusLoggedIn, key: key}
}

// Status reports the point the login flow has reached.
func (s *Session) Status() Status { return s.status }

// Key returns the opaque session key.
func (s *Session) Key() string { return s.key }

// Client returns the owning dispatcher.
func (s *Session) Client() *Client { return s.client }

// Advance mutates the session in place as a login sequence progresses,
// for example from interaction_required to logged_in after the
// challenge answer is accepted.
func (s *Session) Advance(status Status, key string) {
	s.status = status
	if key != "" {
		s.key = key
	}
}
