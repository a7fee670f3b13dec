// Package marker encodes and decodes the fixed-size disk marker block. The
// marker is the only part of a Biscuit index that is ever persisted —
// everything else is rebuilt in memory on first access, with the marker
// serving only as "this index exists and was built once".
package marker

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the fixed 32-bit constant identifying a Biscuit marker block.
const Magic uint32 = 0x42495343

// Version is the current marker format version.
const Version uint32 = 1

// Size is the encoded size of a Block in bytes: four uint32 fields.
const Size = 16

// Block is the fixed-size marker: magic, version, a reserved root pointer
// (always zero — the core keeps no on-disk root, only a presence marker),
// and the row count observed at the last seal.
type Block struct {
	MagicValue uint32
	Version    uint32
	Reserved   uint32
	RowCount   uint32
}

// New returns a Block stamped with the current magic/version and the given
// row count.
func New(rowCount uint32) Block {
	return Block{MagicValue: Magic, Version: Version, RowCount: rowCount}
}

// Valid reports whether b carries the expected magic and a version this
// package knows how to read.
func (b Block) Valid() bool {
	return b.MagicValue == Magic && b.Version == Version
}

// Write encodes b to w in a fixed big-endian layout.
func Write(w io.Writer, b Block) error {
	var buf [Size]byte
	binary.BigEndian.PutUint32(buf[0:4], b.MagicValue)
	binary.BigEndian.PutUint32(buf[4:8], b.Version)
	binary.BigEndian.PutUint32(buf[8:12], b.Reserved)
	binary.BigEndian.PutUint32(buf[12:16], b.RowCount)
	_, err := w.Write(buf[:])
	return err
}

// Read decodes a Block from r.
func Read(r io.Reader) (Block, error) {
	var buf [Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Block{}, fmt.Errorf("marker: read: %w", err)
	}
	b := Block{
		MagicValue: binary.BigEndian.Uint32(buf[0:4]),
		Version:    binary.BigEndian.Uint32(buf[4:8]),
		Reserved:   binary.BigEndian.Uint32(buf[8:12]),
		RowCount:   binary.BigEndian.Uint32(buf[12:16]),
	}
	if !b.Valid() {
		return b, fmt.Errorf("marker: invalid block (magic=%#x version=%d)", b.MagicValue, b.Version)
	}
	return b, nil
}
