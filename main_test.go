package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/robots/transport/websocket"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Warehouse Robots Server" {
		t.Errorf("Unexpected app name %s", AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	svc, err := initializeServices("configs", t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if svc.warehouse == nil || svc.sessions == nil || svc.configs == nil {
		t.Fatal("Expected all services to be initialized")
	}

	configs, err := svc.configs.ListConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if len(configs) < 3 {
		t.Errorf("Expected the bundled layouts, got %d", len(configs))
	}

	// Every bundled layout must build a session
	for _, cfg := range configs {
		if _, err := svc.warehouse.CreateSession(context.Background(), cfg.ConfigID); err != nil {
			t.Errorf("Layout %s failed to build: %v", cfg.ConfigID, err)
		}
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	if _, err := initializeServices("/non/existent/path", t.TempDir()); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_LoadsPersistedSessions(t *testing.T) {
	configDir := t.TempDir()
	sessionsDir := t.TempDir()
	layout := []byte(`{"name":"one","robots":1,"rows":1,"columns":1,"grid":[[4]]}`)
	if err := os.WriteFile(filepath.Join(configDir, "one.json"), layout, 0644); err != nil {
		t.Fatal(err)
	}

	first, err := initializeServices(configDir, sessionsDir)
	if err != nil {
		t.Fatal(err)
	}
	info, err := first.warehouse.CreateSession(context.Background(), "one")
	if err != nil {
		t.Fatal(err)
	}

	second, err := initializeServices(configDir, sessionsDir)
	if err != nil {
		t.Fatal(err)
	}
	if second.sessions.Count() != 1 {
		t.Errorf("Expected persisted session to be loaded, got %d", second.sessions.Count())
	}
	if _, err := second.warehouse.GetSession(context.Background(), info.ID); err != nil {
		t.Errorf("Expected session %s after restart: %v", info.ID, err)
	}
}

func TestRouterServesAPIAndMCP(t *testing.T) {
	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, "default.json"),
		[]byte(`{"name":"default","robots":1,"rows":2,"columns":2}`), 0644); err != nil {
		t.Fatal(err)
	}
	svc, err := initializeServices(configDir, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	router := newRouter(svc.warehouse, hub, "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected health 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET /mcp, got %d", w.Code)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/list",
	})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /mcp, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("add_get_box")) {
		t.Errorf("Expected tool list to include add_get_box, got %s", w.Body.String())
	}
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("ROBOTS_TEST_DIR", "layouts")
	if got := getEnvDefault("ROBOTS_TEST_DIR", "configs"); got != "layouts" {
		t.Errorf("Expected env value, got %s", got)
	}
	if got := getEnvDefault("ROBOTS_TEST_UNSET", "configs"); got != "configs" {
		t.Errorf("Expected fallback, got %s", got)
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *host == "" {
		t.Error("Host should have a default value")
	}
	if *configDir == "" || *sessionsDir == "" {
		t.Error("Directories should have default values")
	}
	if !isStdioMode("mcp") || isStdioMode("server") {
		t.Error("Unexpected mode detection")
	}
}
