// Package core provides the foundational domain types and interfaces used by
// SessionHub. It defines the core abstractions for:
//
//   - Sessions (opaque identity records returned by the remote backend)
//   - States & Events (the kind of the most recent session transition and the
//     broadcast record carrying it)
//   - Backend (the opaque remote authentication capability)
//   - Registry (the process-wide key/value register the current user is
//     published into)
//
// The package intentionally keeps implementation concerns (the session store,
// broadcast delivery, concrete backends) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
