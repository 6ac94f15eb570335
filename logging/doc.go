// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer SessionHubLogger with contextual
// helpers (component, user) and a domain specific helper for recording
// session operation outcomes.
package logging
