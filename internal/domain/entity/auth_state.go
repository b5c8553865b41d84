package entity

// AuthState is the coarse authentication state exposed to the UI.
type AuthState int

const (
	AuthStateRestoring       AuthState = iota // Startup: a persisted session may still be restored.
	AuthStateUnauthenticated                  // No session held.
	AuthStateAuthenticating                   // Login or registration in flight.
	AuthStateAuthenticated                    // Session and profile held.
	AuthStateLoggingOut                       // Logout in flight.
)

var authStateNames = map[AuthState]string{
	AuthStateRestoring:       "restoring",
	AuthStateUnauthenticated: "unauthenticated",
	AuthStateAuthenticating:  "authenticating",
	AuthStateAuthenticated:   "authenticated",
	AuthStateLoggingOut:      "logging_out",
}

func (s AuthState) String() string {
	if name, ok := authStateNames[s]; ok {
		return name
	}

	return "unknown"
}

// MarshalText renders the state by name in JSON payloads.
func (s AuthState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether no transition is in flight in this state.
func (s AuthState) IsTerminal() bool {
	return s == AuthStateUnauthenticated || s == AuthStateAuthenticated
}

// AuthSnapshot is a read-only view of the auth store published to observers.
type AuthSnapshot struct {
	State           AuthState `json:"state"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	IsLoading       bool      `json:"isLoading"`
	Profile         *Profile  `json:"profile,omitempty"`
}
