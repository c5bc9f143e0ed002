package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"
	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Warehouse Robots",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Warehouse Robots - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A warehouse is a grid of cells holding boxes, worked by numbered robots.
Each robot has a queue of GET (pick up) and DROP (put down) commands.
Executing a robot runs the head of its queue; undo reverts the most
recently executed command across all robots and puts it back at the front
of its robot's queue. Boxes are never created or destroyed.

AVAILABLE TOOLS:
- create_session / get_session / list_sessions: manage warehouses
- warehouse_state: grid, robots, queues and history
- reset_warehouse: rebuild from the layout
- get_cell / set_cell: read or write a cell's box count
- add_get_box / add_drop_box: enqueue a command (priority 1 = back of queue, otherwise front)
- execute: run the head of a robot's queue
- undo: revert the last executed command
- print_commands / last_executed_command / how_many_boxes: queries
- run_script: run a batch of commands in the text command format
- list_configs: list layouts
- warehouse_instructions: full rules and the script format`),
	)

	c.registerTools()
}

func sessionProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new warehouse session with optional layout selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name or id of the layout to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active warehouse sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "warehouse_state",
		Description: "Get the full warehouse state: grid, robots, queues and history",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleWarehouseState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_warehouse",
		Description: "Reset the warehouse to its initial layout",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	// Grid
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_cell",
		Description: "Get the number of boxes stored in a cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"x":          intProp("Row index"),
				"y":          intProp("Column index"),
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleGetCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_cell",
		Description: "Set the number of boxes stored in a cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"x":          intProp("Row index"),
				"y":          intProp("Column index"),
				"boxes":      intProp("New box count (non-negative)"),
			},
			Required: []string{"session_id", "x", "y", "boxes"},
		},
	}, c.handleSetCell)

	// Robot commands
	for _, kind := range []engine.CommandKind{engine.Get, engine.Drop} {
		verb := "pick up boxes from"
		if kind == engine.Drop {
			verb = "put boxes down on"
		}
		c.mcpServer.AddTool(mcp.Tool{
			Name:        "add_" + strings.ToLower(string(kind)) + "_box",
			Description: fmt.Sprintf("Enqueue a %s command: the robot will %s a cell when executed", kind, verb),
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"session_id": sessionProp(),
					"robot_id":   intProp("Robot index"),
					"x":          intProp("Row index"),
					"y":          intProp("Column index"),
					"boxes":      intProp("Boxes requested; execution clamps to what is available"),
					"priority":   intProp("1 appends to the back of the queue, any other value inserts at the front (default 1)"),
				},
				Required: []string{"session_id", "robot_id", "x", "y", "boxes"},
			},
		}, c.enqueueHandler(kind))
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "execute",
		Description: "Execute the command at the head of a robot's queue",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"robot_id":   intProp("Robot index"),
			},
			Required: []string{"session_id", "robot_id"},
		},
	}, c.handleExecute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Revert the most recently executed command and put it back at the front of its robot's queue",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleUndo)

	// Queries
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "print_commands",
		Description: "List a robot's pending commands, front to back",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"robot_id":   intProp("Robot index"),
			},
			Required: []string{"session_id", "robot_id"},
		},
	}, c.handlePrintCommands)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "last_executed_command",
		Description: "Show the most recently executed command that has not been undone",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleLastExecuted)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "how_many_boxes",
		Description: "Get the number of boxes a robot is carrying",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"robot_id":   intProp("Robot index"),
			},
			Required: []string{"session_id", "robot_id"},
		},
	}, c.handleHowManyBoxes)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_script",
		Description: "Run a batch of text commands (one per line, e.g. 'ADD_GET_BOX 0 1 1 2 1', 'EXECUTE 0', 'UNDO')",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"script": map[string]interface{}{
					"type":        "string",
					"description": "Commands in the text command format",
				},
			},
			Required: []string{"session_id", "script"},
		},
	}, c.handleRunScript)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available warehouse layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "warehouse_instructions",
		Description: "Get the warehouse rules and the text command format",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The script endpoint reports partial runs as 422 with a full body
	if resp.StatusCode == http.StatusUnprocessableEntity && result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments, or an empty map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok || args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg coerces a numeric argument. JSON numbers arrive as float64 and some
// clients send strings.
func intArg(args map[string]interface{}, name string) (int, error) {
	raw, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	value, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %v", name, err)
	}
	return value, nil
}

// intArgs coerces several required numeric arguments in order
func intArgs(args map[string]interface{}, names ...string) ([]int, error) {
	values := make([]int, len(names))
	for i, name := range names {
		v, err := intArg(args, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configName := cast.ToString(args["config_name"])

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatSnapshot(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&result, "- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(arguments(request)["session_id"])

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleWarehouseState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(arguments(request)["session_id"])

	var state engine.Snapshot
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&state)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(arguments(request)["session_id"])

	var response struct {
		Message string           `json:"message"`
		State   *engine.Snapshot `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.State))), nil
}

func (c *Client) handleGetCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := cast.ToString(args["session_id"])
	xy, err := intArgs(args, "x", "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var cell service.CellResult
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/cells/%d/%d", sessionID, xy[0], xy[1]), nil, &cell); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Cell (%d,%d): %d boxes", cell.X, cell.Y, cell.Boxes)), nil
}

func (c *Client) handleSetCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := cast.ToString(args["session_id"])
	values, err := intArgs(args, "x", "y", "boxes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var cell service.CellResult
	path := fmt.Sprintf("/api/sessions/%s/cells/%d/%d", sessionID, values[0], values[1])
	if err := c.apiCall(ctx, "PUT", path, map[string]int{"boxes": values[2]}, &cell); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Cell (%d,%d) set to %d boxes", cell.X, cell.Y, cell.Boxes)), nil
}

// enqueueHandler builds the handler for add_get_box and add_drop_box
func (c *Client) enqueueHandler(kind engine.CommandKind) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		sessionID := cast.ToString(args["session_id"])
		values, err := intArgs(args, "robot_id", "x", "y", "boxes")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		priority := engine.PriorityBack
		if _, ok := args["priority"]; ok {
			if priority, err = intArg(args, "priority"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		body := map[string]interface{}{
			"kind":     string(kind),
			"x":        values[1],
			"y":        values[2],
			"boxes":    values[3],
			"at_front": engine.InsertAtFront(priority),
		}

		var result service.EnqueueResult
		path := fmt.Sprintf("/api/sessions/%s/robots/%d/commands", sessionID, values[0])
		if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		where := "back"
		if result.AtFront {
			where = "front"
		}
		return mcp.NewToolResultText(fmt.Sprintf("Robot %d: queued %s at the %s (%d pending)",
			result.RobotID, result.Command, where, result.Pending)), nil
	}
}

func (c *Client) handleExecute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := cast.ToString(args["session_id"])
	robotID, err := intArg(args, "robot_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/robots/%d/execute", sessionID, robotID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(arguments(request)["session_id"])

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/undo", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handlePrintCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := cast.ToString(args["session_id"])
	robotID, err := intArg(args, "robot_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.CommandsResult
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/robots/%d/commands", sessionID, robotID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.Text), nil
}

func (c *Client) handleLastExecuted(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(arguments(request)["session_id"])

	var result service.LastExecutedResult
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/last-executed", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.Text), nil
}

func (c *Client) handleHowManyBoxes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := cast.ToString(args["session_id"])
	robotID, err := intArg(args, "robot_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.BoxesResult
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/robots/%d/boxes", sessionID, robotID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.Text), nil
}

func (c *Client) handleRunScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := cast.ToString(args["session_id"])
	text := cast.ToString(args["script"])

	var result service.ScriptResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/script", sessionID), map[string]string{"script": text}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var out strings.Builder
	out.WriteString(result.Output)
	fmt.Fprintf(&out, "\nCommands: %d | Executed: %d | Undone: %d | Incorrect: %d | Errors: %d\n",
		result.Stats.Commands, result.Stats.Executed, result.Stats.Undone, result.Stats.Incorrect, result.Stats.Errors)
	if result.Error != "" {
		fmt.Fprintf(&out, "Stopped: %s\n", result.Error)
	}

	return mcp.NewToolResultText(out.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Layouts:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&result, "- %s (id: %s): %d robots, %dx%d grid, %d boxes",
			cfg.Name, cfg.ConfigID, cfg.Robots, cfg.Rows, cfg.Columns, cfg.TotalBoxes)
		if cfg.Description != "" {
			fmt.Fprintf(&result, " - %s", cfg.Description)
		}
		result.WriteString("\n")
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `WAREHOUSE ROBOTS

GRID
Cells are addressed (x, y) with x the row and y the column, both 0-based.
Each cell holds a non-negative number of boxes.

ROBOTS
Robots are numbered from 0. Each carries some boxes and owns a queue of
pending commands. A command is GET or DROP with a cell and a box count.
Enqueue with priority 1 to append at the back; any other priority inserts
at the front.

EXECUTE
Runs the head of a robot's queue and removes it.
- GET moves min(requested, boxes in cell) from the cell to the robot.
- DROP moves min(requested, boxes carried) from the robot to the cell.
An empty queue is reported, not an error.

UNDO
Reverts the most recently executed command of any robot using the amount
actually moved, then puts the command back at the front of its robot's
queue with its original request. Boxes in cells plus boxes carried never
change.

SCRIPT FORMAT (run_script)
One command per line, arguments separated by spaces:
  ADD_GET_BOX robot x y boxes priority
  ADD_DROP_BOX robot x y boxes priority
  EXECUTE robot
  UNDO
  PRINT_COMMANDS robot
  LAST_EXECUTED_COMMAND
  HOW_MANY_BOXES robot
Unknown commands print "The command is incorrect" and the run continues.`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.State))
}

func formatSnapshot(state *engine.Snapshot) string {
	if state == nil {
		return "No warehouse state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Grid %dx%d | Robots: %d | Total boxes: %d | History: %d\n\n",
		state.Rows, state.Columns, len(state.Robots), state.TotalBoxes, len(state.History))

	width := 1
	for _, row := range state.Grid {
		for _, v := range row {
			width = max(width, len(fmt.Sprint(v)))
		}
	}
	for _, row := range state.Grid {
		for y, v := range row {
			if y > 0 {
				result.WriteString(" ")
			}
			fmt.Fprintf(&result, "%*d", width, v)
		}
		result.WriteString("\n")
	}

	result.WriteString("\n")
	for _, robot := range state.Robots {
		fmt.Fprintf(&result, "Robot %d: carrying %d, %d pending", robot.ID, robot.Carried, len(robot.Queue))
		if len(robot.Queue) > 0 {
			fmt.Fprintf(&result, " (next: %s)", robot.Queue[0])
		}
		result.WriteString("\n")
	}

	if n := len(state.History); n > 0 {
		fmt.Fprintf(&result, "\nLast executed: %s\n", state.History[n-1])
	}

	return result.String()
}

func formatActionResult(result *service.ActionResult) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%s (%s)\n", result.Message, result.Outcome)
	if result.Command != nil {
		c := result.Command
		fmt.Fprintf(&out, "Robot %d %s at (%d,%d): moved %d of %d requested\n", c.RobotID, c.Kind, c.X, c.Y, c.Boxes, c.Requested)
	}
	if result.State != nil {
		fmt.Fprintf(&out, "Total boxes: %d\n", result.State.TotalBoxes)
	}
	return out.String()
}
