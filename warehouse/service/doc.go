// Package service provides the business logic layer for the warehouse
// robots server.
//
// WarehouseService is the facade used by every transport (REST, WebSocket,
// MCP). It owns no state itself: sessions come from a SessionManager and
// layouts from a ConfigManager. Each session wraps its own engine, so any
// number of independent warehouses can run side by side.
//
// Usage:
//
//	configMgr, _ := config.NewManager("configs")
//	sessionMgr := session.NewManager()
//	svc := service.NewWarehouseService(sessionMgr, configMgr)
//
//	info, err := svc.CreateSession(ctx, "small")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_, _ = svc.Enqueue(ctx, info.ID, service.EnqueueRequest{
//		RobotID: 0, Kind: engine.Get, X: 0, Y: 0, Boxes: 3,
//	})
//	result, _ := svc.Execute(ctx, info.ID, 0)
//
// Mutating calls save the session through the SessionManager afterwards.
// Execute and Undo report "nothing to do" as an Outcome, never as an error;
// engine errors are returned unchanged so callers can match them with
// errors.Is.
package service
