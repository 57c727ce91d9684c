package grid

import (
	"container/heap"
	"sort"
)

// FeetPerCell is the display distance of one step on the grid.
const FeetPerCell = 5

// PathFinder answers path and range queries over an ObstacleGrid.
type PathFinder struct {
	grid *ObstacleGrid
}

// NewPathFinder builds a path finder reading from og. Obstacle mutations
// made through og are visible to subsequent queries.
func NewPathFinder(og *ObstacleGrid) *PathFinder {
	return &PathFinder{grid: og}
}

// Grid returns the obstacle grid the finder reads from.
func (pf *PathFinder) Grid() *ObstacleGrid { return pf.grid }

// IsWalkable returns false for out-of-bounds or obstructed cells.
func (pf *PathFinder) IsWalkable(x, y int) bool {
	return pf.grid.InBounds(x, y) && !pf.grid.IsBlocked(x, y)
}

// --- A* pathfinding ---

// pathNode lives in a per-search arena; parent is an arena index, -1 at the root.
type pathNode struct {
	cell   GridCoords
	g, h   float64
	parent int
	seq    int
}

func (n *pathNode) f() float64 { return n.g + n.h }

type openList struct {
	arena []pathNode
	items []int
}

func (ol *openList) Len() int { return len(ol.items) }
func (ol *openList) Less(i, j int) bool {
	a, b := &ol.arena[ol.items[i]], &ol.arena[ol.items[j]]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	return a.seq < b.seq
}
func (ol *openList) Swap(i, j int) { ol.items[i], ol.items[j] = ol.items[j], ol.items[i] }
func (ol *openList) Push(x any) { ol.items = append(ol.items, x.(int)) }
func (ol *openList) Pop() any {
	old := ol.items
	n := old[len(old)-1]
	ol.items = old[:len(old)-1]
	return n
}

func (ol *openList) add(cell GridCoords, g, h float64, parent int) int {
	idx := len(ol.arena)
	ol.arena = append(ol.arena, pathNode{cell: cell, g: g, h: h, parent: parent, seq: idx})
	heap.Push(ol, idx)
	return idx
}

// dirs lists the 8 neighbours: orthogonal first, then diagonal.
var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// orthogonalDirs is the 4-neighbourhood used by MovementRange.
var orthogonalDirs = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

func chebyshev(a, b GridCoords) float64 {
	return float64(max(abs(a.X-b.X), abs(a.Y-b.Y)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FindPath returns the cells from start to end inclusive, or false when
// either endpoint is unwalkable or no path exists. Every step, diagonal or
// orthogonal, costs 1, so the result is optimal under Chebyshev distance.
func (pf *PathFinder) FindPath(start, end GridCoords) ([]GridCoords, bool) {
	if !pf.IsWalkable(start.X, start.Y) || !pf.IsWalkable(end.X, end.Y) {
		return nil, false
	}
	if start == end {
		return []GridCoords{start}, true
	}

	key := func(c GridCoords) int { return pf.grid.key(c.X, c.Y) }

	ol := &openList{}
	heap.Init(ol)
	ol.add(start, 0, chebyshev(start, end), -1)

	closed := make(map[int]bool)
	bestG := make(map[int]float64)
	bestG[key(start)] = 0

	for ol.Len() > 0 {
		curIdx := heap.Pop(ol).(int)
		cur := ol.arena[curIdx]
		if cur.cell == end {
			return buildPath(ol.arena, curIdx), true
		}
		k := key(cur.cell)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range dirs {
			next := cur.cell.Add(d[0], d[1])
			if !pf.IsWalkable(next.X, next.Y) {
				continue
			}
			nk := key(next)
			if closed[nk] {
				continue
			}
			g := cur.g + 1
			if prev, ok := bestG[nk]; ok && g >= prev {
				continue
			}
			bestG[nk] = g
			ol.add(next, g, chebyshev(next, end), curIdx)
		}
	}
	return nil, false
}

func buildPath(arena []pathNode, end int) []GridCoords {
	var cells []GridCoords
	for i := end; i >= 0; i = arena[i].parent {
		cells = append(cells, arena[i].cell)
	}
	// Reverse
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// DistanceFeet converts a path into the distance shown to the player.
func DistanceFeet(path []GridCoords) float64 {
	if len(path) < 2 {
		return 0
	}
	return float64((len(path) - 1) * FeetPerCell)
}

// MovementRange flood-fills from start and returns every cell within
// maxSteps 4-directional steps. The start cell is included whenever it is
// on the grid.
//
// This is deliberately 4-directional while FindPath is 8-directional, so
// the range overlay is conservative near diagonals: a diagonal cell can be
// reachable by FindPath within budget yet sit outside this set.
func (pf *PathFinder) MovementRange(start GridCoords, maxSteps int) map[GridCoords]struct{} {
	out := make(map[GridCoords]struct{})
	if maxSteps < 0 || !pf.grid.InBounds(start.X, start.Y) {
		return out
	}

	type item struct {
		cell  GridCoords
		steps int
	}
	out[start] = struct{}{}
	queue := []item{{cell: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.steps == maxSteps {
			continue
		}
		for _, d := range orthogonalDirs {
			next := cur.cell.Add(d[0], d[1])
			if !pf.IsWalkable(next.X, next.Y) {
				continue
			}
			if _, seen := out[next]; seen {
				continue
			}
			out[next] = struct{}{}
			queue = append(queue, item{cell: next, steps: cur.steps + 1})
		}
	}
	return out
}

// SortedCells returns the cells of set in row-major order.
func SortedCells(set map[GridCoords]struct{}) []GridCoords {
	out := make([]GridCoords, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
