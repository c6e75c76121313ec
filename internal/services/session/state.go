package session

// State — состояние менеджера сессии.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoggedIn
	StateRestoring
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged_in"
	case StateRestoring:
		return "restoring"
	default:
		return "unknown"
	}
}

// TrustLevel — степень доверия к текущей сессии.
type TrustLevel int

const (
	// TrustNone — сессии нет.
	TrustNone TrustLevel = iota
	// TrustVerified — сессия только что подтверждена бэкендом.
	TrustVerified
	// TrustCached — сессия принята из локального снимка без подтверждения.
	TrustCached
)

func (t TrustLevel) String() string {
	switch t {
	case TrustVerified:
		return "verified"
	case TrustCached:
		return "cached"
	default:
		return "none"
	}
}
