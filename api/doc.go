// Package api provides the HTTP REST API for warehouse sessions.
//
// Endpoints:
//
// Session Management:
//   - POST   /api/sessions                 - Create a session ({"config_id": "small"})
//   - GET    /api/sessions                 - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}            - Get session info with its state
//   - DELETE /api/sessions/{id}            - Delete a session
//   - GET    /api/sessions/{id}/state      - Full warehouse snapshot
//   - POST   /api/sessions/{id}/reset      - Rebuild the warehouse from its layout
//
// Grid:
//   - GET /api/sessions/{id}/cells/{x}/{y} - Box count of a cell
//   - PUT /api/sessions/{id}/cells/{x}/{y} - Set a cell ({"boxes": 4})
//
// Robots:
//   - POST /api/sessions/{id}/robots/{robot}/commands - Enqueue ({"kind": "GET", "x": 1, "y": 1, "boxes": 2, "at_front": false})
//   - GET  /api/sessions/{id}/robots/{robot}/commands - Pending commands, front to back
//   - POST /api/sessions/{id}/robots/{robot}/execute  - Execute the head of the queue
//   - GET  /api/sessions/{id}/robots/{robot}/boxes    - Boxes carried
//
// History and Scripts:
//   - POST /api/sessions/{id}/undo          - Undo the most recent executed command
//   - GET  /api/sessions/{id}/last-executed - Most recent executed command
//   - POST /api/sessions/{id}/script        - Run a command script (JSON {"script": "..."} or text/plain)
//
// Configuration:
//   - GET  /api/configs        - List layouts
//   - GET  /api/configs/{name} - Get a layout
//   - POST /api/configs        - Save a layout
//
// Other:
//   - GET /ws?session={id} - WebSocket live updates
//   - GET /health          - Health check
//
// Execute and Undo always answer 200 with an "outcome" of applied, no_command,
// undone or no_history; only real failures use error statuses. Errors are
// returned as JSON:
//
//	{"error": "session zz99: session not found"}
//
// Unknown sessions and layouts map to 404. Bad robot ids, cells outside the
// grid, negative box counts and invalid layouts map to 400. A script that
// stops early answers 422 with the output produced so far.
package api
