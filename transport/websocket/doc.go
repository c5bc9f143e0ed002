// Package websocket pushes live warehouse updates to browser clients.
//
// A central Hub tracks connections per session. Every client runs a read
// pump (keepalive only) and a write pump. After each mutation the REST layer
// calls BroadcastToSession with a fresh engine.Snapshot, and every client
// watching that session receives:
//
//	{"session_id": "ab12", "event": "state_update", "state": {...}}
//
// Clients connect with the session id as a query parameter:
//
//	ws://localhost:8080/ws?session=ab12
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	hub.ServeWS(w, r, sessionID)
package websocket
