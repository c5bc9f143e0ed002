package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

var (
	// ErrSessionNotFound is returned by session managers for unknown ids
	ErrSessionNotFound = errors.New("session not found")

	// ErrConfigNotFound is returned by config managers for unknown layouts
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrInvalidConfig wraps layout validation failures
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRequest indicates a malformed service request
	ErrInvalidRequest = errors.New("invalid request")
)

// WarehouseService defines all warehouse operations exposed to transports
type WarehouseService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Grid
	SetCell(ctx context.Context, sessionID string, x, y, boxes int) (*CellResult, error)
	GetCell(ctx context.Context, sessionID string, x, y int) (*CellResult, error)

	// Robot commands
	Enqueue(ctx context.Context, sessionID string, req EnqueueRequest) (*EnqueueResult, error)
	Execute(ctx context.Context, sessionID string, robotID int) (*ActionResult, error)
	Undo(ctx context.Context, sessionID string) (*ActionResult, error)
	RunScript(ctx context.Context, sessionID, script string) (*ScriptResult, error)

	// Queries
	PrintCommands(ctx context.Context, sessionID string, robotID int) (*CommandsResult, error)
	LastExecuted(ctx context.Context, sessionID string) (*LastExecutedResult, error)
	HowManyBoxes(ctx context.Context, sessionID string, robotID int) (*BoxesResult, error)
	GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.LayoutConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.LayoutConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.LayoutConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles warehouse layout loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.LayoutConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.LayoutConfig
	SaveConfig(name string, config *engine.LayoutConfig) error
}

// Session represents an active warehouse session
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.WarehouseEngine
	Config         *engine.LayoutConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
