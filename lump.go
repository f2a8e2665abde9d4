package wad

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
)

// Lump is a handle on one directory entry of a WAD. It is cheap to copy.
type Lump struct {
	wad   *WAD
	info  LumpInfo
	index int
}

// Index returns the lump's directory position.
func (l Lump) Index() int {
	return l.index
}

// Name returns the lump name.
func (l Lump) Name() string {
	return l.info.Name
}

// Size returns the lump size in bytes.
func (l Lump) Size() int {
	return l.info.Size
}

// IsVirtual reports whether the lump is a marker with no content.
func (l Lump) IsVirtual() bool {
	return l.info.Size == 0
}

// reader returns a reader restricted to the lump's byte range.
func (l Lump) reader() io.Reader {
	section := io.NewSectionReader(l.wad.file, int64(l.info.Filepos), int64(l.info.Size))
	return bufio.NewReader(section)
}

func (l Lump) ioError(op string, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &LumpIOError{Op: op, Index: l.index, Name: l.info.Name, Err: err}
}

// ReadBytes returns the lump's raw bytes. The buffer grows with the bytes
// actually read, so a directory size past the end of the file costs no more
// than the file holds.
func (l Lump) ReadBytes() ([]byte, error) {
	lump, err := io.ReadAll(l.reader())
	if err != nil {
		return nil, l.ioError("read", err)
	}
	if len(lump) < l.info.Size {
		return nil, l.ioError("read", io.ErrUnexpectedEOF)
	}
	return lump, nil
}

// DecodeSlice decodes the lump as an array of fixed-size little-endian
// records. The lump size must be a nonzero multiple of the record size.
func DecodeSlice[T any](l Lump) ([]T, error) {
	var zero T
	elementSize := binary.Size(zero)
	if elementSize <= 0 || l.info.Size == 0 || l.info.Size%elementSize != 0 {
		return nil, newSizeMismatch(l, elementSize)
	}

	data, err := l.ReadBytes()
	if err != nil {
		return nil, err
	}
	records := make([]T, len(data)/elementSize)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, records); err != nil {
		return nil, l.ioError("decode", err)
	}
	logger.Debug("Decoded lump", "name", l.info.Name, "index", l.index, "records", len(records))
	return records, nil
}

// DecodeOne decodes the lump as exactly one fixed-size record.
func DecodeOne[T any](l Lump) (T, error) {
	var record T
	elementSize := binary.Size(record)
	if elementSize <= 0 || l.info.Size != elementSize {
		return record, newSizeMismatch(l, elementSize)
	}
	if err := binary.Read(l.reader(), binary.LittleEndian, &record); err != nil {
		return record, l.ioError("decode", err)
	}
	return record, nil
}

// ReadBlobs splits the lump into opaque fixed-size blobs. B must be a byte
// array type; blobs are copied without decoding.
func ReadBlobs[B any](l Lump) ([]B, error) {
	blobType := reflect.TypeFor[B]()
	if blobType.Kind() != reflect.Array || blobType.Elem().Kind() != reflect.Uint8 {
		panic(fmt.Sprintf("wad: ReadBlobs needs a byte array type, got %v", blobType))
	}
	blobSize := blobType.Len()
	if blobSize == 0 || l.info.Size == 0 || l.info.Size%blobSize != 0 {
		return nil, newSizeMismatch(l, blobSize)
	}

	data, err := l.ReadBytes()
	if err != nil {
		return nil, err
	}
	blobs := make([]B, len(data)/blobSize)
	for i := range blobs {
		copy(reflect.ValueOf(&blobs[i]).Elem().Bytes(), data[i*blobSize:])
	}
	return blobs, nil
}
