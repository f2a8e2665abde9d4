package wad

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// testLump is a lump written by buildWAD. A nonzero size overrides the size
// recorded in the directory.
type testLump struct {
	name string
	data []byte
	size int32
}

// buildWAD lays out a header, the lump data and then the directory.
func buildWAD(t *testing.T, magic string, lumps ...testLump) []byte {
	t.Helper()

	var data bytes.Buffer
	offsets := make([]int32, len(lumps))
	for i, l := range lumps {
		offsets[i] = int32(12 + data.Len())
		data.Write(l.data)
	}

	var out bytes.Buffer
	out.WriteString(magic)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, int32(len(lumps))))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, int32(12+data.Len())))
	out.Write(data.Bytes())
	for i, l := range lumps {
		size := int32(len(l.data))
		if l.size != 0 {
			size = l.size
		}
		var name String8
		copy(name[:], l.name)
		require.NoError(t, binary.Write(&out, binary.LittleEndian, binLumpInfo{
			Filepos: offsets[i],
			Size:    size,
			Name:    name,
		}))
	}
	return out.Bytes()
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	return buf.Bytes()
}

func openTestWAD(t *testing.T, lumps ...testLump) *WAD {
	t.Helper()
	w, err := NewWAD(bytes.NewReader(buildWAD(t, "IWAD", lumps...)))
	require.NoError(t, err)
	return w
}

func name8(s string) String8 {
	var n String8
	copy(n[:], s)
	return n
}

// testMap is the raw record data of one level.
type testMap struct {
	things     []Thing
	linedefs   []Linedef
	sidedefs   []Sidedef
	vertexes   []Vertex
	segs       []Seg
	subSectors []SubSector
	nodes      []Node
	sectors    []Sector
}

func (m testMap) lumps(t *testing.T, name string) []testLump {
	t.Helper()
	return []testLump{
		{name: name},
		{name: "THINGS", data: encode(t, m.things)},
		{name: "LINEDEFS", data: encode(t, m.linedefs)},
		{name: "SIDEDEFS", data: encode(t, m.sidedefs)},
		{name: "VERTEXES", data: encode(t, m.vertexes)},
		{name: "SEGS", data: encode(t, m.segs)},
		{name: "SSECTORS", data: encode(t, m.subSectors)},
		{name: "NODES", data: encode(t, m.nodes)},
		{name: "SECTORS", data: encode(t, m.sectors)},
	}
}

// level builds a Level directly, without going through a WAD.
func (m testMap) level() *Level {
	l := &Level{
		Name:       "TEST",
		Things:     m.things,
		Linedefs:   m.linedefs,
		Sidedefs:   m.sidedefs,
		Vertexes:   m.vertexes,
		Segs:       m.segs,
		SubSectors: m.subSectors,
		Nodes:      m.nodes,
		Sectors:    m.sectors,
	}
	l.ThingsBySector, l.Warnings = l.computeThingsBySector()
	return l
}

// squareMap is a single 64x64 sector with the given tag and things.
func squareMap(tag uint16, things ...Thing) testMap {
	side := Sidedef{MiddleTexture: name8("STARTAN3"), Sector: 0}
	return testMap{
		things: things,
		linedefs: []Linedef{
			{StartVertex: 0, EndVertex: 1, Flags: LineBlockPlayerAndMonsters, RightSide: 0, LeftSide: NoSide},
			{StartVertex: 1, EndVertex: 2, Flags: LineBlockPlayerAndMonsters, RightSide: 1, LeftSide: NoSide},
			{StartVertex: 2, EndVertex: 3, Flags: LineBlockPlayerAndMonsters, RightSide: 2, LeftSide: NoSide},
			{StartVertex: 3, EndVertex: 0, Flags: LineBlockPlayerAndMonsters, RightSide: 3, LeftSide: NoSide},
		},
		sidedefs: []Sidedef{side, side, side, side},
		vertexes: []Vertex{{0, 0}, {64, 0}, {64, 64}, {0, 64}},
		segs: []Seg{
			{StartVertex: 0, EndVertex: 1, Linedef: 0},
			{StartVertex: 1, EndVertex: 2, Angle: 0x4000, Linedef: 1},
			{StartVertex: 2, EndVertex: 3, Angle: 0x8000, Linedef: 2},
			{StartVertex: 3, EndVertex: 0, Angle: 0xc000, Linedef: 3},
		},
		subSectors: []SubSector{{NumSegs: 4, FirstSeg: 0}},
		nodes: []Node{{
			X: 0, Y: 0, DX: 64, DY: 0,
			BBoxR:  BoundBox{Top: 64, Bottom: 0, Left: 0, Right: 64},
			BBoxL:  BoundBox{Top: 64, Bottom: 0, Left: 0, Right: 64},
			ChildR: subSectorFlag,
			ChildL: subSectorFlag,
		}},
		sectors: []Sector{{
			FloorHeight:    0,
			CeilingHeight:  128,
			FloorTexture:   name8("FLOOR4_8"),
			CeilingTexture: name8("CEIL3_5"),
			Light:          160,
			Tag:            tag,
		}},
	}
}

// twoRoomMap is two 64x64 sectors sharing the two-sided linedef 1:
//
//	3---2---5
//	| 0 | 1 |
//	0---1---4
func twoRoomMap() testMap {
	return testMap{
		things: []Thing{
			{X: 32, Y: 32, Angle: 90, Type: 1, Flags: 7},
			{X: 96, Y: 32, Type: 3004, Flags: 0x0c},
			{X: 200, Y: 200, Type: 2011},
		},
		linedefs: []Linedef{
			{StartVertex: 0, EndVertex: 1, RightSide: 0, LeftSide: NoSide},
			{StartVertex: 1, EndVertex: 2, Flags: LineTwoSided, RightSide: 1, LeftSide: 2},
			{StartVertex: 2, EndVertex: 3, RightSide: 3, LeftSide: NoSide},
			{StartVertex: 3, EndVertex: 0, RightSide: 4, LeftSide: NoSide},
			{StartVertex: 1, EndVertex: 4, RightSide: 5, LeftSide: NoSide},
			{StartVertex: 4, EndVertex: 5, RightSide: 6, LeftSide: NoSide},
			{StartVertex: 5, EndVertex: 2, RightSide: 7, LeftSide: NoSide},
		},
		sidedefs: []Sidedef{
			{Sector: 0}, {Sector: 0}, {Sector: 1}, {Sector: 0},
			{Sector: 0}, {Sector: 1}, {Sector: 1}, {Sector: 1},
		},
		vertexes: []Vertex{{0, 0}, {64, 0}, {64, 64}, {0, 64}, {128, 0}, {128, 64}},
		segs: []Seg{
			{StartVertex: 1, EndVertex: 2, Linedef: 1, Direction: 0},
			{StartVertex: 2, EndVertex: 1, Linedef: 1, Direction: 1},
		},
		subSectors: []SubSector{{NumSegs: 1, FirstSeg: 0}, {NumSegs: 1, FirstSeg: 1}},
		nodes: []Node{{
			X: 64, Y: 0, DX: 0, DY: 64,
			ChildR: 0 | subSectorFlag,
			ChildL: 1 | subSectorFlag,
		}},
		sectors: []Sector{
			{FloorHeight: 0, CeilingHeight: 128, Light: 160, Tag: 5},
			{FloorHeight: 32, CeilingHeight: 96, Light: 96, Tag: 7},
		},
	}
}
