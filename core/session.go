package core

// AnonymousUserID is the reserved user id the backend resolves to a shared
// anonymous identity when logging in without credentials.
const AnonymousUserID = "anonymous"

// Session is an authenticated (or anonymous) identity record returned by the
// backend. Beyond identity comparison no field is interpreted locally; the
// Anonymous marker is the one attribute added on this side of the wire.
type Session struct {
	ID         string            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Anonymous  bool              `json:"anonymous,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Same reports whether both sessions refer to the same identity.
func (s *Session) Same(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Attributes != nil {
		c.Attributes = make(map[string]string, len(s.Attributes))
		for k, v := range s.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}
