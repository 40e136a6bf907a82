package rules

/*
Conway applies Conway's Game of Life rules (B3/S23) to determine the next state of a cell.

A live cell with fewer than two or more than three live neighbours dies, a live cell
with two or three survives, a dead cell with exactly three is born. Every other dead
cell stays dead.
*/
func Conway(alive bool, neighbors uint8) bool {
	switch {
	case alive && neighbors < 2:
		return false
	case alive && (neighbors == 2 || neighbors == 3):
		return true
	case alive && neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return alive
	}
}
