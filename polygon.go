package wad

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// computeThingsBySector assigns things to every tagged sector by testing them
// against the sector's boundary polygon. Untagged sectors are skipped. This is
// a plain O(sectors*things) scan, not a spatial index.
func (l *Level) computeThingsBySector() (map[int][]int, []IntegrityWarning) {
	result := make(map[int][]int)
	var warnings []IntegrityWarning
	warn := func(w IntegrityWarning) {
		logger.Warning(w.Reason, "sector", w.Sector)
		warnings = append(warnings, w)
	}

	for sectorIndex := range l.Sectors {
		sector := &l.Sectors[sectorIndex]
		if sector.Tag == 0 {
			continue
		}
		thingIndexes := make([]int, 0)
		result[sectorIndex] = thingIndexes

		ring, err := l.sectorBoundary(sectorIndex)
		if err != nil {
			warn(IntegrityWarning{Sector: sectorIndex, Reason: err.Error()})
		}
		if len(ring) == 0 {
			continue
		}
		logger.Debug("Sector boundary", "sector", sectorIndex, "tag", sector.Tag, "vertexes", len(ring))

		// Close the ring
		ring = append(ring, ring[0])
		for thingIndex, thing := range l.Things {
			if planar.RingContains(ring, orb.Point{float64(thing.X), float64(thing.Y)}) {
				thingIndexes = append(thingIndexes, thingIndex)
			}
		}
		result[sectorIndex] = thingIndexes
		logger.Debug("Sector things", "sector", sectorIndex, "tag", sector.Tag, "things", thingIndexes)
	}
	return result, warnings
}

// sectorBoundary walks the linedefs touching a sector and returns the
// boundary vertexes in WAD coordinates, without repeating the first one. The
// walk stops early on a boundary that does not close; the partial boundary is
// returned together with an error describing where it broke.
func (l *Level) sectorBoundary(sectorIndex int) (orb.Ring, error) {
	lines := make(map[uint16][]uint16)
	start, found := uint16(0), false
	for i := range l.Linedefs {
		line := &l.Linedefs[i]
		right, left := l.lineSectors(line)
		if right != sectorIndex && left != sectorIndex {
			continue
		}
		if !found {
			start, found = line.StartVertex, true
		}
		lines[line.StartVertex] = append(lines[line.StartVertex], line.EndVertex)
		lines[line.EndVertex] = append(lines[line.EndVertex], line.StartVertex)
	}
	if !found {
		return nil, fmt.Errorf("no linedefs for tagged sector")
	}

	var ring orb.Ring
	visited := map[uint16]bool{}
	current := start
	for {
		v, ok := l.vertexPoint(current)
		if !ok {
			return ring, fmt.Errorf("linedef references missing vertex %d", current)
		}
		ring = append(ring, v)
		visited[current] = true

		neighbours := lines[current]
		delete(lines, current)
		next, ok := uint16(0), false
		for _, n := range neighbours {
			if !visited[n] {
				next, ok = n, true
				break
			}
		}
		if !ok {
			if len(lines) == 0 {
				return ring, nil
			}
			return ring, fmt.Errorf("could not find corresponding linedef to vertex %d (%v, %v)",
				current, v[0], v[1])
		}
		current = next
	}
}

func (l *Level) vertexPoint(id uint16) (orb.Point, bool) {
	if int(id) >= len(l.Vertexes) {
		return orb.Point{}, false
	}
	v := l.Vertexes[id]
	return orb.Point{float64(v.X), float64(v.Y)}, true
}
