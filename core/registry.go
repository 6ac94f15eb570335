package core

import "context"

// RegistryUserKey is the register key the current session is published under.
const RegistryUserKey = "user"

// Registry is the application-wide key/value register the current user is
// mirrored into on every publish. It is a collaborator interface: the store
// writes it but never reads it back.
type Registry interface {
	// Set stores value under key. A nil value records the absence of a
	// current session.
	Set(ctx context.Context, key string, value any) error
}
