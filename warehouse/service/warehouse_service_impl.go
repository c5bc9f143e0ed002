package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/script"
)

// maxSuggestions caps the "did you mean" list for unknown layouts
const maxSuggestions = 3

// warehouseServiceImpl implements the WarehouseService interface. mu is held
// for every call that touches a session, reads included: looking a session up
// also writes its LastAccessedAt, and engine queries walk live queues.
type warehouseServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
}

// NewWarehouseService creates a new warehouse service instance
func NewWarehouseService(sessions SessionManager, configs ConfigManager) WarehouseService {
	return &warehouseServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new session from a named layout, or from the
// default layout when configName is empty
func (s *warehouseServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.LayoutConfig
	configID := configName
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return nil, s.configNotFound(configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.configID(config.Name)
	}

	sess, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *warehouseServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *warehouseServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *warehouseServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Reset rebuilds the session's warehouse from its layout, dropping all queues
// and history
func (s *warehouseServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewEngine(sess.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to reset session %s: %w", sessionID, err)
	}
	sess.Engine = eng

	s.save(sessionID, "reset")
	return eng.Snapshot(), nil
}

// SetCell overwrites the box count of a cell
func (s *warehouseServiceImpl) SetCell(ctx context.Context, sessionID string, x, y, boxes int) (*CellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.SetMapValue(x, y, boxes); err != nil {
		return nil, err
	}

	s.save(sessionID, "set cell")
	return &CellResult{X: x, Y: y, Boxes: boxes}, nil
}

// GetCell reads the box count of a cell
func (s *warehouseServiceImpl) GetCell(ctx context.Context, sessionID string, x, y int) (*CellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	boxes, err := sess.Engine.GetMapValue(x, y)
	if err != nil {
		return nil, err
	}
	return &CellResult{X: x, Y: y, Boxes: boxes}, nil
}

// Enqueue adds a command to a robot's queue
func (s *warehouseServiceImpl) Enqueue(ctx context.Context, sessionID string, req EnqueueRequest) (*EnqueueResult, error) {
	kind, err := engine.ParseCommandKind(strings.ToUpper(string(req.Kind)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	cmd := engine.Command{Kind: kind, X: req.X, Y: req.Y, Boxes: req.Boxes}
	if err := sess.Engine.Enqueue(req.RobotID, cmd, req.AtFront); err != nil {
		return nil, err
	}
	pending, _ := sess.Engine.PendingCount(req.RobotID)

	s.save(sessionID, "enqueue")
	return &EnqueueResult{RobotID: req.RobotID, Command: cmd, AtFront: req.AtFront, Pending: pending}, nil
}

// Execute runs the front command of a robot's queue
func (s *warehouseServiceImpl) Execute(ctx context.Context, sessionID string, robotID int) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := sess.Engine.Execute(robotID)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Outcome: outcome, Message: script.FormatOutcome(outcome)}
	if outcome == engine.OutcomeApplied {
		if last, ok := sess.Engine.LastExecutedCommand(); ok {
			result.Command = &last
		}
		s.save(sessionID, "execute")
	}
	result.State = sess.Engine.Snapshot()
	return result, nil
}

// Undo reverts the most recent execution in the session
func (s *warehouseServiceImpl) Undo(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	// Capture the entry being reverted for the response
	last, hadHistory := sess.Engine.LastExecutedCommand()

	outcome, err := sess.Engine.Undo()
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Outcome: outcome, Message: script.FormatOutcome(outcome)}
	if outcome == engine.OutcomeUndone && hadHistory {
		result.Command = &last
		s.save(sessionID, "undo")
	}
	result.State = sess.Engine.Snapshot()
	return result, nil
}

// RunScript runs a header-less command script against the session. Output
// written before a script error is still returned.
func (s *warehouseServiceImpl) RunScript(ctx context.Context, sessionID, body string) (*ScriptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	stats, runErr := script.RunCommands(ctx, sess.Engine, strings.NewReader(body), &out)

	result := &ScriptResult{Output: out.String(), Stats: stats}
	if runErr != nil {
		result.Error = runErr.Error()
	}
	if stats.Commands > 0 {
		s.save(sessionID, "script")
	}
	result.State = sess.Engine.Snapshot()
	return result, nil
}

// PrintCommands lists a robot's pending commands front to back
func (s *warehouseServiceImpl) PrintCommands(ctx context.Context, sessionID string, robotID int) (*CommandsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	seq, err := sess.Engine.Commands(robotID)
	if err != nil {
		return nil, err
	}

	commands := slices.Collect(seq)
	if commands == nil {
		commands = []engine.Command{}
	}
	return &CommandsResult{
		RobotID:  robotID,
		Commands: commands,
		Text:     script.FormatCommands(robotID, slices.Values(commands)),
	}, nil
}

// LastExecuted reports the top of the session's history
func (s *warehouseServiceImpl) LastExecuted(ctx context.Context, sessionID string) (*LastExecutedResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	last, ok := sess.Engine.LastExecutedCommand()
	result := &LastExecutedResult{Found: ok, Text: script.FormatLastExecuted(last, ok)}
	if ok {
		result.Command = &last
	}
	return result, nil
}

// HowManyBoxes reports how many boxes a robot carries
func (s *warehouseServiceImpl) HowManyBoxes(ctx context.Context, sessionID string, robotID int) (*BoxesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	n, err := sess.Engine.HowManyBoxes(robotID)
	if err != nil {
		return nil, err
	}
	return &BoxesResult{RobotID: robotID, Boxes: n, Text: script.FormatHowManyBoxes(n)}, nil
}

// GetState returns a snapshot of the session's warehouse
func (s *warehouseServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot(), nil
}

// ListConfigs returns the available layouts
func (s *warehouseServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a layout by name
func (s *warehouseServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.LayoutConfig, error) {
	config, err := s.configs.LoadConfig(configName)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return nil, s.configNotFound(configName)
		}
		return nil, err
	}
	return config, nil
}

// SaveConfig stores a layout under the given name
func (s *warehouseServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.LayoutConfig) error {
	if configName == "" {
		return fmt.Errorf("%w: config name is required", ErrInvalidRequest)
	}
	return s.configs.SaveConfig(configName, config)
}

// session fetches a session and touches its access time
func (s *warehouseServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// save persists a session after a mutation; failures are logged only
func (s *warehouseServiceImpl) save(sessionID, op string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, op, err)
	}
}

// configID returns the config_id for a layout display name
func (s *warehouseServiceImpl) configID(name string) string {
	available, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range available {
			if cfg.Name == name {
				return cfg.ConfigID
			}
		}
	}
	if name == "" {
		return "default"
	}
	return name
}

// configNotFound builds a not-found error listing close matches or, failing
// that, every available layout
func (s *warehouseServiceImpl) configNotFound(name string) error {
	available, err := s.configs.ListConfigs()
	if err != nil || len(available) == 0 {
		return fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, name)
	}

	ids := make([]string, 0, len(available))
	for _, cfg := range available {
		ids = append(ids, cfg.ConfigID)
	}

	matches := fuzzy.Find(name, ids)
	if len(matches) == 0 {
		return fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, name, ids)
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return fmt.Errorf("%w: '%s'. Did you mean: %s?", ErrConfigNotFound, name, strings.Join(suggestions, ", "))
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          sess.Engine.Snapshot(),
		Config:         sess.Config,
	}
}
