// Package mcp exposes the warehouse to AI agents over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes a request to the REST API,
// so agents and browsers see the same sessions. Numeric arguments are coerced
// with spf13/cast because MCP clients send JSON numbers as floats and some
// send strings.
//
// Tools:
//   - create_session, get_session, list_sessions, warehouse_state, reset_warehouse
//   - get_cell, set_cell
//   - add_get_box, add_drop_box, execute, undo
//   - print_commands, last_executed_command, how_many_boxes
//   - run_script, list_configs, warehouse_instructions
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST JSON-RPC to /mcp on the main server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
