// Package wad provides read-only access to Doom's data archives, also known as
// WAD files, and to the level topology stored in them.
// The file format is documented in The Unofficial DOOM Specs:
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html

package wad

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// WAD header identifier. PWADs are not supported.
const iwadMagic = "IWAD"

// Directory capacity reserved before any entry is read.
const maxPreallocLumps = 4096

// WAD is Doom's data archive. Lumps are addressed by directory index or by
// name; duplicate names resolve to the last directory entry while every entry
// stays reachable by index.
//
// WAD holds no shared read cursor: every lump read uses its own section
// reader, so concurrent reads are safe whenever the underlying io.ReaderAt is.
type WAD struct {
	header    Header
	file      io.ReaderAt
	closer    io.Closer
	lumpInfos []LumpInfo
	lumpNums  map[string]int
	levels    []int
	levelNums map[string]int
}

// Archive is an alias kept for callers that think of the WAD as a lump archive.
type Archive = WAD

type binHeader struct {
	Magic        [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

type Header struct {
	NumLumps     int
	InfoTableOfs int
}

type binLumpInfo struct {
	Filepos int32
	Size    int32
	Name    String8
}

// LumpInfo is a directory entry.
type LumpInfo struct {
	Name    string
	Filepos int
	Size    int
}

// WAD eight-character string type. Null-terminated for short strings.
type String8 [8]byte

// String converts String8 to string
func (s String8) String() string {
	i := bytes.IndexByte(s[:], 0)
	if i == -1 {
		i = len(s)
	}
	return string(s[0:i])
}

// Open reads WAD metadata from the named file. No lump content is read.
func Open(filename string) (*WAD, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not open WAD file")
	}
	w, err := NewWAD(file)
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "%s", filename)
	}
	w.closer = file
	return w, nil
}

// NewWAD reads WAD metadata from r. It returns a WAD object that can be used
// to read individual lumps.
func NewWAD(r io.ReaderAt) (*WAD, error) {
	logger.Info("Start reading WAD")

	w := &WAD{file: r}

	// Read header
	var binHeader binHeader
	if err := binary.Read(io.NewSectionReader(r, 0, 12), binary.LittleEndian, &binHeader); err != nil {
		return nil, &FormatError{Reason: "could not read header: " + err.Error()}
	}
	if string(binHeader.Magic[:]) != iwadMagic {
		return nil, &FormatError{Reason: "invalid header identifier: " + string(bytes.ToValidUTF8(binHeader.Magic[:], []byte("?")))}
	}
	if binHeader.NumLumps < 0 || binHeader.InfoTableOfs < 0 {
		return nil, &FormatError{Reason: "negative lump count or info table offset"}
	}
	w.header = Header{int(binHeader.NumLumps), int(binHeader.InfoTableOfs)}

	if err := w.readInfoTables(); err != nil {
		return nil, err
	}
	logger.Info("Read WAD directory", "lumps", len(w.lumpInfos), "levels", len(w.levels))
	return w, nil
}

// Close closes the underlying file when the WAD was created with Open.
func (w *WAD) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

func (w *WAD) readInfoTables() error {
	const entrySize = 16
	table := io.NewSectionReader(w.file, int64(w.header.InfoTableOfs), int64(w.header.NumLumps)*entrySize)

	lumpNums := map[string]int{}
	levelNums := map[string]int{}
	levels := make([]int, 0, 64)
	// The lump count is untrusted until its entries have been read
	lumpInfos := make([]LumpInfo, 0, min(w.header.NumLumps, maxPreallocLumps))
	for i := 0; i < w.header.NumLumps; i++ {
		var binInfo binLumpInfo
		if err := binary.Read(table, binary.LittleEndian, &binInfo); err != nil {
			return &FormatError{Reason: errors.Wrapf(err, "invalid lump info for lump %d", i).Error()}
		}
		if binInfo.Filepos < 0 || binInfo.Size < 0 {
			return &FormatError{Reason: errors.Errorf("invalid lump info for lump %d: offset=%d size=%d",
				i, binInfo.Filepos, binInfo.Size).Error()}
		}
		lumpInfo := LumpInfo{binInfo.Name.String(), int(binInfo.Filepos), int(binInfo.Size)}

		// Levels are recognised by the THINGS lump following their marker
		if lumpInfo.Name == "THINGS" {
			if i == 0 {
				return &FormatError{Reason: "THINGS lump without a preceding level marker"}
			}
			lumpNum := i - 1
			levelNums[lumpInfos[lumpNum].Name] = len(levels)
			levels = append(levels, lumpNum)
		}
		lumpNums[lumpInfo.Name] = i
		lumpInfos = append(lumpInfos, lumpInfo)
	}
	w.levels = levels
	w.levelNums = levelNums
	w.lumpNums = lumpNums
	w.lumpInfos = lumpInfos
	return nil
}

// NumLumps returns the number of directory entries.
func (w *WAD) NumLumps() int {
	return len(w.lumpInfos)
}

// LumpInfos returns a copy of the directory.
func (w *WAD) LumpInfos() []LumpInfo {
	return append([]LumpInfo(nil), w.lumpInfos...)
}

// LumpByIndex returns the lump at directory position index.
func (w *WAD) LumpByIndex(index int) (Lump, error) {
	if index < 0 || index >= len(w.lumpInfos) {
		return Lump{}, &MissingLumpError{Index: index}
	}
	return Lump{wad: w, info: w.lumpInfos[index], index: index}, nil
}

// NamedLump returns the last lump called name.
func (w *WAD) NamedLump(name string) (Lump, bool) {
	index, ok := w.lumpNums[name]
	if !ok {
		return Lump{}, false
	}
	return Lump{wad: w, info: w.lumpInfos[index], index: index}, true
}

// RequiredLump is NamedLump, failing with a MissingLumpError.
func (w *WAD) RequiredLump(name string) (Lump, error) {
	lump, ok := w.NamedLump(name)
	if !ok {
		return Lump{}, &MissingLumpError{Name: name, Index: -1}
	}
	return lump, nil
}

// NumLevels returns the number of levels found in the directory.
func (w *WAD) NumLevels() int {
	return len(w.levels)
}

// LevelLump returns the marker lump of the level at levelIndex.
func (w *WAD) LevelLump(levelIndex int) (Lump, error) {
	if levelIndex < 0 || levelIndex >= len(w.levels) {
		return Lump{}, errors.Wrapf(&MissingLumpError{Index: levelIndex}, "no level %d", levelIndex)
	}
	return w.LumpByIndex(w.levels[levelIndex])
}

// LevelIndex returns the level index for a level marker name.
func (w *WAD) LevelIndex(name string) (int, bool) {
	i, ok := w.levelNums[name]
	return i, ok
}

// LevelNames returns a slice of level names found in the WAD archive.
func (w *WAD) LevelNames() []string {
	result := make([]string, 0, len(w.levelNums))
	for name := range w.levelNums {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

type RGB struct {
	Red, Green, Blue uint8
}

// Each palette in PLAYPAL contains 256 three-ubyte colors totaling 768 bytes (RGB).
type Palette [768]byte

// Color returns the RGB triple at index i.
func (p *Palette) Color(i uint8) RGB {
	return RGB{p[3*int(i)], p[3*int(i)+1], p[3*int(i)+2]}
}

// Each color map is a table 256 bytes long. It is indexed using a pixel value (from 0 to 255) and
// yields a new, brightness-adjusted pixel value.
type ColorMap [256]byte

// ENDOOM consists of 4000 bytes representing an 80x25 text block exactly as stored in VGA video
// memory. Every character is stored as two bytes: the character and its color attribute.
type Endoom [4000]byte

// Palettes reads the PLAYPAL lump.
func (w *WAD) Palettes() ([]Palette, error) {
	lump, err := w.RequiredLump("PLAYPAL")
	if err != nil {
		return nil, err
	}
	return ReadBlobs[Palette](lump)
}

// ColorMaps reads the COLORMAP lump.
func (w *WAD) ColorMaps() ([]ColorMap, error) {
	lump, err := w.RequiredLump("COLORMAP")
	if err != nil {
		return nil, err
	}
	return ReadBlobs[ColorMap](lump)
}

// Endoom reads the ENDOOM lump.
func (w *WAD) Endoom() (*Endoom, error) {
	lump, err := w.RequiredLump("ENDOOM")
	if err != nil {
		return nil, err
	}
	e, err := DecodeOne[Endoom](lump)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
