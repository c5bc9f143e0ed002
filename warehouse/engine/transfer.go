package engine

// transfer moves boxes between cell (x,y) and the robot and returns the
// number actually moved. GET takes from the cell, DROP gives to it. The amount
// is clamped to what the source holds, so neither side can go negative and the
// warehouse total is unchanged.
func (e *WarehouseEngine) transfer(robot *Robot, kind CommandKind, x, y, boxes int) int {
	cell := &e.grid[x][y]

	switch kind {
	case Get:
		applied := clampTransfer(boxes, *cell)
		*cell -= applied
		robot.Carried += applied
		return applied

	case Drop:
		applied := clampTransfer(boxes, robot.Carried)
		robot.Carried -= applied
		*cell += applied
		return applied
	}

	return 0
}

// clampTransfer limits a requested amount to [0, available]
func clampTransfer(requested, available int) int {
	if requested <= 0 || available <= 0 {
		return 0
	}
	return min(requested, available)
}
