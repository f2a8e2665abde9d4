package wad

import "fmt"

// FormatError indicates a malformed archive header or directory.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "bad WAD format: " + e.Reason
}

// SizeMismatchError is returned when a lump size is not an exact, nonzero
// multiple of (or equal to) the size of the record it is decoded as.
type SizeMismatchError struct {
	Lump      string
	Index     int
	Total     int
	Element   int
	Quotient  int
	Remainder int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("invalid lump size in %q (index=%d): total=%d, element=%d, div=%d, mod=%d",
		e.Lump, e.Index, e.Total, e.Element, e.Quotient, e.Remainder)
}

func newSizeMismatch(l Lump, element int) *SizeMismatchError {
	e := &SizeMismatchError{
		Lump:    l.Name(),
		Index:   l.Index(),
		Total:   l.Size(),
		Element: element,
	}
	if element > 0 {
		e.Quotient = e.Total / element
		e.Remainder = e.Total % element
	}
	return e
}

// MissingLumpError reports a lump that could not be found by name or index.
// Index is -1 for name lookups.
type MissingLumpError struct {
	Name  string
	Index int
}

func (e *MissingLumpError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("missing required lump %q", e.Name)
	}
	return fmt.Sprintf("missing required lump %d", e.Index)
}

// LumpIOError wraps a read failure on a lump's byte range.
type LumpIOError struct {
	Op    string
	Index int
	Name  string
	Err   error
}

func (e *LumpIOError) Error() string {
	return fmt.Sprintf("%s lump %d %q: %v", e.Op, e.Index, e.Name, e.Err)
}

func (e *LumpIOError) Unwrap() error {
	return e.Err
}

// IntegrityWarning is a non-fatal data problem found while building a level's
// derived structures. Sector is -1 when the warning is not tied to a sector.
type IntegrityWarning struct {
	Sector int
	Reason string
}

func (w IntegrityWarning) Error() string {
	if w.Sector < 0 {
		return "bad WAD: " + w.Reason
	}
	return fmt.Sprintf("bad WAD: sector %d: %s", w.Sector, w.Reason)
}
