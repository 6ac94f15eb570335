// Package session implements the two tightly coupled halves of the session
// lifecycle core:
//
//   - Store: the single owner of the current session plus a broadcast channel
//     of transition events that replays the most recent event to each new
//     subscriber.
//   - Manager: the asynchronous operations (resume, anonymous login,
//     credentialed login, logout) that call the backend capability and
//     transition the Store.
//
// The Store is mutated only through Publish; the Manager is the only intended
// publisher. Higher layers (UI, bridges) consume the Store passively via
// Subscribe and never mutate it.
package session
