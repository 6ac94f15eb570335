package core

import "encoding/json"

// State classifies the kind of the most recent session transition. It is not
// a continuously-held mode: an error state simply records that the last
// operation against the backend failed.
type State int

const (
	// StateLogin is published after any operation that established a session.
	StateLogin State = iota
	// StateLogout is published after the session was cleared, whether or not
	// the remote logout call succeeded.
	StateLogout
	// StateError is published after a failed anonymous login or resume.
	StateError
	// StateNotAllowed is published after a failed credentialed login.
	StateNotAllowed
)

var stateNames = map[State]string{
	StateLogin:      "login",
	StateLogout:     "logout",
	StateError:      "error",
	StateNotAllowed: "notallowed",
}

var stateFromName = map[string]State{
	"login":      StateLogin,
	"logout":     StateLogout,
	"error":      StateError,
	"notallowed": StateNotAllowed,
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if v, ok := stateFromName[name]; ok {
		*s = v
	}
	return nil
}
