package grid

import "sort"

// ObstacleGrid is a bounded W×H set of blocked cells.
type ObstacleGrid struct {
	width   int
	height  int
	blocked map[int]struct{}
	version uint64
}

// NewObstacleGrid creates an empty grid. Non-positive dimensions yield a
// grid with no valid cells.
func NewObstacleGrid(width, height int) *ObstacleGrid {
	return &ObstacleGrid{
		width:   max(0, width),
		height:  max(0, height),
		blocked: make(map[int]struct{}),
	}
}

// Width returns the number of columns.
func (og *ObstacleGrid) Width() int { return og.width }

// Height returns the number of rows.
func (og *ObstacleGrid) Height() int { return og.height }

// Version changes on every effective mutation.
func (og *ObstacleGrid) Version() uint64 { return og.version }

// InBounds reports whether (x, y) lies on the grid.
func (og *ObstacleGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < og.width && y < og.height
}

func (og *ObstacleGrid) key(x, y int) int {
	return y*og.width + x
}

// AddObstacle blocks (x, y). It returns false when the cell is out of
// bounds or already blocked.
func (og *ObstacleGrid) AddObstacle(x, y int) bool {
	if !og.InBounds(x, y) {
		return false
	}
	k := og.key(x, y)
	if _, ok := og.blocked[k]; ok {
		return false
	}
	og.blocked[k] = struct{}{}
	og.version++
	return true
}

// RemoveObstacle unblocks (x, y). It returns false when nothing was removed.
func (og *ObstacleGrid) RemoveObstacle(x, y int) bool {
	if !og.InBounds(x, y) {
		return false
	}
	k := og.key(x, y)
	if _, ok := og.blocked[k]; !ok {
		return false
	}
	delete(og.blocked, k)
	og.version++
	return true
}

// IsBlocked reports whether (x, y) holds an obstacle. Out-of-bounds cells
// are not obstacles; use PathFinder.IsWalkable for walkability.
func (og *ObstacleGrid) IsBlocked(x, y int) bool {
	if !og.InBounds(x, y) {
		return false
	}
	_, ok := og.blocked[og.key(x, y)]
	return ok
}

// Len returns the number of blocked cells.
func (og *ObstacleGrid) Len() int { return len(og.blocked) }

// Cells returns the blocked cells in row-major order.
func (og *ObstacleGrid) Cells() []GridCoords {
	keys := make([]int, 0, len(og.blocked))
	for k := range og.blocked {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]GridCoords, len(keys))
	for i, k := range keys {
		out[i] = GridCoords{X: k % og.width, Y: k / og.width}
	}
	return out
}

// Clear removes every obstacle.
func (og *ObstacleGrid) Clear() {
	if len(og.blocked) == 0 {
		return
	}
	og.blocked = make(map[int]struct{})
	og.version++
}
