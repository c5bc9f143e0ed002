// Package session stores warehouse sessions.
//
// Manager keeps sessions in memory under case-insensitive ids and can be
// backed by a SessionPersistence. FilePersistence writes one <id>.json file per
// session holding the layout and a full engine snapshot (grid, robot queues,
// history), so a restarted server resumes exactly where it stopped, undo
// history included.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configMgr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	_ = manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", "small", layout)
package session
