// Package ws bridges the session store's broadcast channel onto WebSocket
// connections so browser-based UI subscribers can react to session
// transitions. Each connected client holds its own store subscription and
// therefore receives the replayed most recent event on connect, followed by
// all later transitions in publish order.
package ws
