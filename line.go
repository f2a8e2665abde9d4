package wad

// NoSide marks an absent sidedef on a linedef.
const NoSide = -1

// Linedef is a wall between two vertexes, with up to two sides.
type Linedef struct {
	StartVertex, EndVertex uint16
	Flags                  uint16
	Special                uint16
	Tag                    uint16
	RightSide, LeftSide    int16 // NoSide if absent
}

// Linedef flag bits.
const (
	LineBlockPlayerAndMonsters uint16 = 1 << iota
	LineBlockMonsters
	LineTwoSided
	LineUpperTextureUnpegged
	LineLowerTextureUnpegged
	LineSecret
	LineBlocksSound
	LineNeverMap
	LineAlwaysMap
)

func (l *Linedef) BlockPlayerAndMonsters() bool { return l.Flags&LineBlockPlayerAndMonsters != 0 }
func (l *Linedef) BlockMonsters() bool          { return l.Flags&LineBlockMonsters != 0 }
func (l *Linedef) TwoSided() bool               { return l.Flags&LineTwoSided != 0 }
func (l *Linedef) UpperTextureUnpegged() bool   { return l.Flags&LineUpperTextureUnpegged != 0 }
func (l *Linedef) LowerTextureUnpegged() bool   { return l.Flags&LineLowerTextureUnpegged != 0 }
func (l *Linedef) Secret() bool                 { return l.Flags&LineSecret != 0 }
func (l *Linedef) BlocksSound() bool            { return l.Flags&LineBlocksSound != 0 }
func (l *Linedef) NeverMap() bool               { return l.Flags&LineNeverMap != 0 }
func (l *Linedef) AlwaysMap() bool              { return l.Flags&LineAlwaysMap != 0 }

// Sidedef is one face of a linedef, bound to exactly one sector.
type Sidedef struct {
	XOffset       int16
	YOffset       int16
	UpperTexture  String8
	LowerTexture  String8
	MiddleTexture String8
	Sector        uint16
}

// LeftSidedef returns the linedef's left (back) side, or nil.
func (l *Level) LeftSidedef(line *Linedef) *Sidedef {
	return l.sidedef(line.LeftSide)
}

// RightSidedef returns the linedef's right (front) side, or nil.
func (l *Level) RightSidedef(line *Linedef) *Sidedef {
	return l.sidedef(line.RightSide)
}

func (l *Level) sidedef(id int16) *Sidedef {
	if id < 0 || int(id) >= len(l.Sidedefs) {
		return nil
	}
	return &l.Sidedefs[id]
}

// SidedefSector returns the sector a side faces, or nil.
func (l *Level) SidedefSector(side *Sidedef) *Sector {
	return l.Sector(int(side.Sector))
}

// lineSectors returns the sector ids on each side of a linedef. A side that
// does not resolve to a sidedef is reported as -1.
func (l *Level) lineSectors(line *Linedef) (right, left int) {
	right, left = -1, -1
	if side := l.RightSidedef(line); side != nil {
		right = int(side.Sector)
	}
	if side := l.LeftSidedef(line); side != nil {
		left = int(side.Sector)
	}
	return right, left
}
