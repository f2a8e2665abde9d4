package wad

import "iter"

// AdjacentSectors returns the sectors sharing a two-sided linedef with the
// sector id, in linedef order. Every range over the result scans all linedefs
// again; use BuildAdjacency for repeated queries.
func (l *Level) AdjacentSectors(id int) iter.Seq2[int, *Sector] {
	return func(yield func(int, *Sector) bool) {
		if l.Sector(id) == nil {
			return
		}
		for i := range l.Linedefs {
			right, left := l.lineSectors(&l.Linedefs[i])
			if right < 0 || left < 0 {
				continue
			}
			var other int
			switch {
			case left == id && right != id:
				other = right
			case right == id && left != id:
				other = left
			default:
				continue
			}
			adjacent := l.Sector(other)
			if adjacent == nil {
				logger.Error(IntegrityWarning{Sector: id, Reason: "linedef references missing sector"},
					"Cannot access adjacent sector", "linedef", i, "adjacent", other)
				continue
			}
			if !yield(other, adjacent) {
				return
			}
		}
	}
}

// MinLight returns the lowest light level of a sector and its neighbours.
func (l *Level) MinLight(id int) (int16, bool) {
	sector := l.Sector(id)
	if sector == nil {
		return 0, false
	}
	light := sector.Light
	for _, adjacent := range l.AdjacentSectors(id) {
		light = min(light, adjacent.Light)
	}
	return light, true
}

// NeighbourHeights summarises the floor and ceiling heights around a sector.
type NeighbourHeights struct {
	LowestFloor    int16
	HighestFloor   int16
	LowestCeiling  int16
	HighestCeiling int16

	// NextFloor is the lowest neighbouring floor above the sector's own floor.
	NextFloor    int16
	HasNextFloor bool
}

// NeighbourHeights folds the heights of a sector's neighbours. It reports
// false when the sector has no resolvable neighbour.
func (l *Level) NeighbourHeights(id int) (NeighbourHeights, bool) {
	sector := l.Sector(id)
	if sector == nil {
		return NeighbourHeights{}, false
	}
	var heights NeighbourHeights
	found := false
	for _, adjacent := range l.AdjacentSectors(id) {
		floor, ceiling := adjacent.FloorHeight, adjacent.CeilingHeight
		if !found {
			heights = NeighbourHeights{
				LowestFloor:    floor,
				HighestFloor:   floor,
				LowestCeiling:  ceiling,
				HighestCeiling: ceiling,
			}
			found = true
		} else {
			heights.LowestFloor = min(heights.LowestFloor, floor)
			heights.HighestFloor = max(heights.HighestFloor, floor)
			heights.LowestCeiling = min(heights.LowestCeiling, ceiling)
			heights.HighestCeiling = max(heights.HighestCeiling, ceiling)
		}
		if floor > sector.FloorHeight && (!heights.HasNextFloor || floor < heights.NextFloor) {
			heights.NextFloor = floor
			heights.HasNextFloor = true
		}
	}
	return heights, found
}

// Adjacency holds precomputed sector neighbours, keyed by sector id.
type Adjacency map[int][]int

// BuildAdjacency computes the neighbours of every sector in one pass over
// the linedefs. Neighbour lists match AdjacentSectors, in the same order.
func (l *Level) BuildAdjacency() Adjacency {
	adjacency := make(Adjacency, len(l.Sectors))
	for i := range l.Linedefs {
		right, left := l.lineSectors(&l.Linedefs[i])
		if right < 0 || left < 0 || right == left {
			continue
		}
		if l.Sector(right) == nil || l.Sector(left) == nil {
			continue
		}
		adjacency[right] = append(adjacency[right], left)
		adjacency[left] = append(adjacency[left], right)
	}
	return adjacency
}

// Neighbours returns the precomputed neighbours of a sector.
func (a Adjacency) Neighbours(id int) []int {
	return a[id]
}
