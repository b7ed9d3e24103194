package ahocorasick

import (
	"encoding/binary"
	"io"
)

// The wire format's variable-length integer is exactly what
// encoding/binary's Uvarint/PutUvarint already implement: 7 data bits
// per byte, continuation bit in the top bit, little-endian byte order.
// See DESIGN.md for why this package leans on the standard library's
// own implementation rather than a third-party one.
//
// base/check/fail can hold negative values (leaf sentinels, the -1 "free"
// marker on an empty trie), so signed elements are zig-zag encoded before
// being written as a Uvarint, the standard way to extend LEB128 to
// negative numbers.

func zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func unzigzag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

func writeUvarint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func writeVarint(w io.Writer, v int64) error {
	return writeUvarint(w, zigzag(v))
}

func readUvarint(r io.ByteReader) (uint64, error) {
	return binary.ReadUvarint(r)
}

func readVarint(r io.ByteReader) (int64, error) {
	v, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	return unzigzag(v), nil
}

func writeString(w io.Writer, s string) error {
	if err := writeUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r *limitedByteReader) (string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", wrapErr(ErrCorruptInput, "short read on string", err)
	}
	return string(buf), nil
}

func writeBool(w io.Writer, b bool) error {
	v := byte(0)
	if b {
		v = 1
	}
	_, err := w.Write([]byte{v})
	return err
}

func readBool(r *limitedByteReader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, wrapErr(ErrCorruptInput, "short read on bool", err)
	}
	return b != 0, nil
}

// limitedByteReader adapts an io.Reader into the io.ByteReader the
// standard varint decoder needs, while also implementing io.Reader for
// io.ReadFull calls against fixed-width and string payloads.
type limitedByteReader struct {
	r io.Reader
}

func (l *limitedByteReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(l.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (l *limitedByteReader) Read(p []byte) (int, error) {
	return l.r.Read(p)
}
