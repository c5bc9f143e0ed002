package engine

// CountGridBoxes sums every cell of a grid
func CountGridBoxes(grid [][]int) int {
	total := 0
	for _, row := range grid {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// DensestCell returns the position holding the most boxes. Ties go to the
// lowest x, then the lowest y. found is false for an empty grid or one with no
// boxes at all.
func DensestCell(grid [][]int) (Position, int, bool) {
	var best Position
	most := 0
	found := false

	for x := 0; x < len(grid); x++ {
		for y := 0; y < len(grid[x]); y++ {
			if grid[x][y] > most {
				most = grid[x][y]
				best = Position{X: x, Y: y}
				found = true
			}
		}
	}

	return best, most, found
}

// NonEmptyCells counts the cells that hold at least one box
func NonEmptyCells(grid [][]int) int {
	count := 0
	for _, row := range grid {
		for _, v := range row {
			if v > 0 {
				count++
			}
		}
	}
	return count
}
