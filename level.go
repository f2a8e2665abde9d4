package wad

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Positions of a level's data lumps relative to its marker lump.
const (
	thingsOffset     = 1
	linedefsOffset   = 2
	sidedefsOffset   = 3
	vertexesOffset   = 4
	segsOffset       = 5
	subSectorsOffset = 6
	nodesOffset      = 7
	sectorsOffset    = 8
)

// WAD coordinates per world unit.
const worldScale = 100

// Level is the topology of one playable map. It is immutable once loaded and
// can be shared between readers.
type Level struct {
	Name       string
	Things     []Thing
	Linedefs   []Linedef
	Sidedefs   []Sidedef
	Vertexes   []Vertex
	Segs       []Seg
	SubSectors []SubSector
	Nodes      []Node
	Sectors    []Sector

	// ThingsBySector maps every tagged sector to the indexes of the things
	// standing inside it.
	ThingsBySector map[int][]int

	// Warnings lists the integrity problems found while loading.
	Warnings []IntegrityWarning
}

type Thing struct {
	X     int16
	Y     int16
	Angle int16 // Degrees
	Type  uint16
	Flags uint16
}

func (t *Thing) Skill1and2() bool      { return t.Flags&1 != 0 }
func (t *Thing) Skill3() bool          { return t.Flags&2 != 0 }
func (t *Thing) Skill4and5() bool      { return t.Flags&4 != 0 }
func (t *Thing) Ambush() bool          { return t.Flags&8 != 0 }
func (t *Thing) MultiplayerOnly() bool { return t.Flags&0x10 != 0 }

// Radians returns the facing angle in radians.
func (t *Thing) Radians() float64 {
	return degreesToRadians(t.Angle)
}

type Vertex struct {
	X, Y int16
}

// Seg is a linedef fragment bounding a subsector.
type Seg struct {
	StartVertex uint16
	EndVertex   uint16
	Angle       uint16 // Binary angle
	Linedef     uint16
	Direction   uint16 // 0 - same as linedef, 1 - opposite to linedef
	Offset      uint16 // Distance along line to start of segment
}

// Radians returns the seg angle in radians.
func (s *Seg) Radians() float64 {
	return bamToRadians(s.Angle)
}

type SubSector struct {
	NumSegs  uint16
	FirstSeg uint16
}

type Sector struct {
	FloorHeight    int16
	CeilingHeight  int16
	FloorTexture   String8
	CeilingTexture String8
	Light          int16
	Type           uint16
	Tag            uint16
}

// ReadLevel reads the named level from the WAD archive.
func (w *WAD) ReadLevel(name string) (*Level, error) {
	levelIndex, ok := w.LevelIndex(name)
	if !ok {
		return nil, &MissingLumpError{Name: name, Index: -1}
	}
	return LoadLevel(w, levelIndex)
}

// LoadLevel reads the level at levelIndex. Any lump failure aborts the load.
func LoadLevel(w *WAD, levelIndex int) (*Level, error) {
	marker, err := w.LevelLump(levelIndex)
	if err != nil {
		return nil, err
	}
	logger.Info("Reading level", "name", marker.Name(), "index", levelIndex)

	level := &Level{Name: marker.Name()}
	start := marker.Index()
	if level.Things, err = readLevelLump[Thing](w, marker, start+thingsOffset); err != nil {
		return nil, err
	}
	if level.Linedefs, err = readLevelLump[Linedef](w, marker, start+linedefsOffset); err != nil {
		return nil, err
	}
	if level.Sidedefs, err = readLevelLump[Sidedef](w, marker, start+sidedefsOffset); err != nil {
		return nil, err
	}
	if level.Vertexes, err = readLevelLump[Vertex](w, marker, start+vertexesOffset); err != nil {
		return nil, err
	}
	if level.Segs, err = readLevelLump[Seg](w, marker, start+segsOffset); err != nil {
		return nil, err
	}
	if level.SubSectors, err = readLevelLump[SubSector](w, marker, start+subSectorsOffset); err != nil {
		return nil, err
	}
	if level.Nodes, err = readLevelLump[Node](w, marker, start+nodesOffset); err != nil {
		return nil, err
	}
	if level.Sectors, err = readLevelLump[Sector](w, marker, start+sectorsOffset); err != nil {
		return nil, err
	}

	level.ThingsBySector, level.Warnings = level.computeThingsBySector()

	logger.Info("Loaded level",
		"name", level.Name,
		"things", len(level.Things),
		"linedefs", len(level.Linedefs),
		"sidedefs", len(level.Sidedefs),
		"vertexes", len(level.Vertexes),
		"segs", len(level.Segs),
		"subsectors", len(level.SubSectors),
		"nodes", len(level.Nodes),
		"sectors", len(level.Sectors),
		"warnings", len(level.Warnings),
	)
	return level, nil
}

func readLevelLump[T any](w *WAD, marker Lump, index int) ([]T, error) {
	lump, err := w.LumpByIndex(index)
	if err != nil {
		return nil, errors.Wrapf(err, "level %s", marker.Name())
	}
	records, err := DecodeSlice[T](lump)
	if err != nil {
		return nil, errors.Wrapf(err, "level %s: lump %s (index %d)", marker.Name(), lump.Name(), index)
	}
	return records, nil
}

// Vertex returns a vertex in world coordinates.
func (l *Level) Vertex(id uint16) (mgl32.Vec2, bool) {
	if int(id) >= len(l.Vertexes) {
		return mgl32.Vec2{}, false
	}
	v := l.Vertexes[id]
	return mgl32.Vec2{-float32(v.X) / worldScale, float32(v.Y) / worldScale}, true
}

// Sector returns the sector with the given id, or nil.
func (l *Level) Sector(id int) *Sector {
	if id < 0 || id >= len(l.Sectors) {
		return nil
	}
	return &l.Sectors[id]
}

// SegLinedef returns the linedef a seg was cut from, or nil.
func (l *Level) SegLinedef(seg *Seg) *Linedef {
	if int(seg.Linedef) >= len(l.Linedefs) {
		return nil
	}
	return &l.Linedefs[seg.Linedef]
}

// SegVertices returns both ends of a seg in world coordinates.
func (l *Level) SegVertices(seg *Seg) (v1, v2 mgl32.Vec2, ok bool) {
	v1, ok1 := l.Vertex(seg.StartVertex)
	v2, ok2 := l.Vertex(seg.EndVertex)
	if !ok1 || !ok2 {
		return mgl32.Vec2{}, mgl32.Vec2{}, false
	}
	return v1, v2, true
}

// SegSidedef returns the side a seg faces, or nil.
func (l *Level) SegSidedef(seg *Seg) *Sidedef {
	line := l.SegLinedef(seg)
	if line == nil {
		return nil
	}
	if seg.Direction == 0 {
		return l.RightSidedef(line)
	}
	return l.LeftSidedef(line)
}

// SegBackSidedef returns the side behind a seg, or nil.
func (l *Level) SegBackSidedef(seg *Seg) *Sidedef {
	line := l.SegLinedef(seg)
	if line == nil {
		return nil
	}
	if seg.Direction == 0 {
		return l.LeftSidedef(line)
	}
	return l.RightSidedef(line)
}

// SegSector returns the sector in front of a seg, or nil.
func (l *Level) SegSector(seg *Seg) *Sector {
	side := l.SegSidedef(seg)
	if side == nil {
		return nil
	}
	return l.SidedefSector(side)
}

// SegBackSector returns the sector behind a seg, or nil.
func (l *Level) SegBackSector(seg *Seg) *Sector {
	side := l.SegBackSidedef(seg)
	if side == nil {
		return nil
	}
	return l.SidedefSector(side)
}

// SubSector returns the subsector at index.
func (l *Level) SubSector(index int) (SubSector, bool) {
	if index < 0 || index >= len(l.SubSectors) {
		return SubSector{}, false
	}
	return l.SubSectors[index], true
}

// SubSectorSegs returns the segs of a subsector. It reports false when the
// range runs past the end of the segs.
func (l *Level) SubSectorSegs(ss SubSector) ([]Seg, bool) {
	start := int(ss.FirstSeg)
	end := start + int(ss.NumSegs)
	if end > len(l.Segs) {
		return nil, false
	}
	return l.Segs[start:end], true
}

// ThingsInSector returns the things standing in a tagged sector.
func (l *Level) ThingsInSector(id int) []*Thing {
	indexes := l.ThingsBySector[id]
	things := make([]*Thing, 0, len(indexes))
	for _, i := range indexes {
		things = append(things, &l.Things[i])
	}
	return things
}
