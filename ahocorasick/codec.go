package ahocorasick

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"time"
)

// floatBitsOf/floatOfBits round-trip a float64 through its IEEE-754 bit
// pattern so it can ride the same signed-varint path as every other
// integer on the wire, rather than adding a second fixed-width lane.
func floatBitsOf(f float64) int64    { return int64(math.Float64bits(f)) }
func floatOfBits(v int64) float64    { return math.Float64frombits(uint64(v)) }

// Save writes the Automaton in a binary form: a short property table,
// the four backbone integer arrays, the output sets, and, when
// saveValues is true, every pattern's associated value. ctx is checked
// at the start, before every property, array element, output entry, and
// value; the count and length prefixes are written without a check of
// their own. A cancelled context aborts with ErrCancelled leaving w
// partially written.
func (a *Automaton[TValue]) Save(ctx context.Context, w io.Writer, saveValues bool) error {
	if err := checkCancel(ctx); err != nil {
		return err
	}

	props := []struct {
		name  string
		write func() error
	}{
		{"saveValues", func() error { return writeBool(w, saveValues) }},
		{"size", func() error { return writeVarint(w, int64(a.size)) }},
		{"ignoreCase", func() error { return writeBool(w, a.ignoreCase) }},
	}
	if err := writeUvarint(w, uint64(len(props))); err != nil {
		return err
	}
	for _, p := range props {
		if err := checkCancel(ctx); err != nil {
			return err
		}
		if err := writeString(w, p.name); err != nil {
			return err
		}
		if err := p.write(); err != nil {
			return err
		}
	}

	for _, arr := range [][]int{a.keyLengths, a.base, a.check, a.fail} {
		if err := writeIntArray(ctx, w, arr); err != nil {
			return err
		}
	}

	if err := writeUvarint(w, uint64(len(a.output))); err != nil {
		return err
	}
	for _, out := range a.output {
		if err := checkCancel(ctx); err != nil {
			return err
		}
		if out == nil {
			if err := writeVarint(w, -1); err != nil {
				return err
			}
			continue
		}
		if err := writeIntArray(ctx, w, out); err != nil {
			return err
		}
	}

	if !saveValues {
		return nil
	}
	if err := writeUvarint(w, uint64(len(a.values))); err != nil {
		return err
	}
	for _, v := range a.values {
		if err := checkCancel(ctx); err != nil {
			return err
		}
		if err := writeValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

// writeIntArray writes a nil-free, length-prefixed array of signed
// varints: key_lengths, base, check, and fail all take this shape.
// A -1 length prefix, used only by Save's output-array slot, is handled
// by the caller, not here.
func writeIntArray(ctx context.Context, w io.Writer, arr []int) error {
	if err := writeVarint(w, int64(len(arr))); err != nil {
		return err
	}
	for _, v := range arr {
		if err := checkCancel(ctx); err != nil {
			return err
		}
		if err := writeVarint(w, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

// Load reconstructs an Automaton from the form Save writes. When the
// stream was saved without values (saveValues == false at Save time),
// restore is called once per pattern index, in order, to fill the
// Automaton's value slots; restore may be nil in that case only if the
// caller never intends to call ValueAt/ValueOf (they will get TValue's
// zero value back). When the stream carries values, restore is ignored.
func Load[TValue any](ctx context.Context, r io.Reader, restore func(patternIndex int) TValue) (*Automaton[TValue], error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	br := &limitedByteReader{r: bufio.NewReader(r)}

	propCount, err := readUvarint(br)
	if err != nil {
		return nil, wrapErr(ErrCorruptInput, "reading property count", err)
	}
	var saveValues, ignoreCase bool
	var size int64
	for i := uint64(0); i < propCount; i++ {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		name, err := readString(br)
		if err != nil {
			return nil, wrapErr(ErrCorruptInput, "reading property name", err)
		}
		switch name {
		case "saveValues":
			if saveValues, err = readBool(br); err != nil {
				return nil, err
			}
		case "size":
			if size, err = readVarint(br); err != nil {
				return nil, wrapErr(ErrCorruptInput, "reading size property", err)
			}
		case "ignoreCase":
			if ignoreCase, err = readBool(br); err != nil {
				return nil, err
			}
		default:
			return nil, newErr(ErrCorruptInput, fmt.Sprintf("unknown property %q", name))
		}
	}
	if size < 0 {
		return nil, newErr(ErrCorruptInput, "negative size property")
	}

	keyLengths, err := readIntArray(ctx, br)
	if err != nil {
		return nil, err
	}
	base, err := readIntArray(ctx, br)
	if err != nil {
		return nil, err
	}
	check, err := readIntArray(ctx, br)
	if err != nil {
		return nil, err
	}
	fail, err := readIntArray(ctx, br)
	if err != nil {
		return nil, err
	}
	if len(base) != int(size)+65535 || len(check) != int(size)+65535 {
		return nil, newErr(ErrCorruptInput, "base/check length does not match size property")
	}

	outputCount, err := readUvarint(br)
	if err != nil {
		return nil, wrapErr(ErrCorruptInput, "reading output count", err)
	}
	output := make([][]int, outputCount)
	for i := range output {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		n, err := readVarint(br)
		if err != nil {
			return nil, wrapErr(ErrCorruptInput, "reading output entry length", err)
		}
		if n < 0 {
			output[i] = nil
			continue
		}
		out := make([]int, n)
		for j := range out {
			if err := checkCancel(ctx); err != nil {
				return nil, err
			}
			v, err := readVarint(br)
			if err != nil {
				return nil, wrapErr(ErrCorruptInput, "reading output entry element", err)
			}
			out[j] = int(v)
		}
		output[i] = out
	}

	values := make([]TValue, len(keyLengths))
	hasValues := false
	if saveValues {
		count, err := readUvarint(br)
		if err != nil {
			return nil, wrapErr(ErrCorruptInput, "reading value count", err)
		}
		if int(count) != len(keyLengths) {
			return nil, newErr(ErrCorruptInput, "value count does not match pattern count")
		}
		for i := range values {
			if err := checkCancel(ctx); err != nil {
				return nil, err
			}
			v, err := readValue(br)
			if err != nil {
				return nil, err
			}
			tv, ok := v.(TValue)
			if !ok {
				return nil, newErr(ErrCorruptInput, fmt.Sprintf("stored value at index %d does not fit TValue", i))
			}
			values[i] = tv
		}
		hasValues = true
	} else if restore != nil {
		for i := range values {
			values[i] = restore(i)
		}
		hasValues = true
	}

	return &Automaton[TValue]{
		base:         base,
		check:        check,
		size:         int(size),
		fail:         fail,
		output:       output,
		keyLengths:   keyLengths,
		values:       values,
		hasValues:    hasValues,
		ignoreCase:   ignoreCase,
		patternCount: len(keyLengths),
	}, nil
}

func readIntArray(ctx context.Context, r *limitedByteReader) ([]int, error) {
	n, err := readVarint(r)
	if err != nil {
		return nil, wrapErr(ErrCorruptInput, "reading array length", err)
	}
	if n < 0 {
		return nil, newErr(ErrCorruptInput, "negative array length")
	}
	out := make([]int, n)
	for i := range out {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		v, err := readVarint(r)
		if err != nil {
			return nil, wrapErr(ErrCorruptInput, "reading array element", err)
		}
		out[i] = int(v)
	}
	return out, nil
}

func checkCancel(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return wrapErr(ErrCancelled, "save/load cancelled", err)
	}
	return nil
}

// valueTypeCode tags the wire encoding of one stored TValue, a small
// dispatch table so Load can reconstruct values without knowing
// TValue's concrete type ahead of time. Bools are one byte; every
// numeric payload, floats included via their IEEE-754 bit pattern, is a
// varint; strings are length-prefixed UTF-8, like every other string on
// the wire.
type valueTypeCode byte

const (
	vtNull valueTypeCode = iota
	vtBool
	vtInt8
	vtUint8
	vtInt16
	vtUint16
	vtInt32
	vtUint32
	vtInt64
	vtUint64
	vtInt
	vtUint
	vtFloat32
	vtFloat64
	vtString
	vtDateTime
)

func writeValue(w io.Writer, v any) error {
	switch x := v.(type) {
	case bool:
		return writeTagged(w, vtBool, func() error { return writeBool(w, x) })
	case int8:
		return writeTagged(w, vtInt8, func() error { return writeVarint(w, int64(x)) })
	case uint8:
		return writeTagged(w, vtUint8, func() error { return writeUvarint(w, uint64(x)) })
	case int16:
		return writeTagged(w, vtInt16, func() error { return writeVarint(w, int64(x)) })
	case uint16:
		return writeTagged(w, vtUint16, func() error { return writeUvarint(w, uint64(x)) })
	case int32:
		return writeTagged(w, vtInt32, func() error { return writeVarint(w, int64(x)) })
	case uint32:
		return writeTagged(w, vtUint32, func() error { return writeUvarint(w, uint64(x)) })
	case int:
		return writeTagged(w, vtInt, func() error { return writeVarint(w, int64(x)) })
	case int64:
		return writeTagged(w, vtInt64, func() error { return writeVarint(w, x) })
	case uint:
		return writeTagged(w, vtUint, func() error { return writeUvarint(w, uint64(x)) })
	case uint64:
		return writeTagged(w, vtUint64, func() error { return writeUvarint(w, x) })
	case float32:
		return writeTagged(w, vtFloat32, func() error { return writeVarint(w, int64(floatBitsOf(float64(x)))) })
	case float64:
		return writeTagged(w, vtFloat64, func() error { return writeVarint(w, floatBitsOf(x)) })
	case string:
		return writeTagged(w, vtString, func() error { return writeString(w, x) })
	case time.Time:
		return writeTagged(w, vtDateTime, func() error { return writeVarint(w, x.UnixNano()) })
	case nil:
		return newErr(ErrNotSupported, "nil value element")
	default:
		return newErr(ErrNotSupported, fmt.Sprintf("value type %T has no wire encoding", x))
	}
}

func writeTagged(w io.Writer, code valueTypeCode, body func() error) error {
	if _, err := w.Write([]byte{byte(code)}); err != nil {
		return err
	}
	return body()
}

func readValue(r *limitedByteReader) (any, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, wrapErr(ErrCorruptInput, "reading value type code", err)
	}
	switch valueTypeCode(tag) {
	case vtBool:
		return readBool(r)
	case vtInt8:
		v, err := readVarint(r)
		return int8(v), wrapReadErr(err)
	case vtUint8:
		v, err := readUvarint(r)
		return uint8(v), wrapReadErr(err)
	case vtInt16:
		v, err := readVarint(r)
		return int16(v), wrapReadErr(err)
	case vtUint16:
		v, err := readUvarint(r)
		return uint16(v), wrapReadErr(err)
	case vtInt32:
		v, err := readVarint(r)
		return int32(v), wrapReadErr(err)
	case vtUint32:
		v, err := readUvarint(r)
		return uint32(v), wrapReadErr(err)
	case vtInt64:
		v, err := readVarint(r)
		return v, wrapReadErr(err)
	case vtUint64:
		v, err := readUvarint(r)
		return v, wrapReadErr(err)
	case vtInt:
		v, err := readVarint(r)
		return int(v), wrapReadErr(err)
	case vtUint:
		v, err := readUvarint(r)
		return uint(v), wrapReadErr(err)
	case vtFloat32:
		v, err := readVarint(r)
		return float32(floatOfBits(v)), wrapReadErr(err)
	case vtFloat64:
		v, err := readVarint(r)
		return floatOfBits(v), wrapReadErr(err)
	case vtString:
		return readString(r)
	case vtDateTime:
		v, err := readVarint(r)
		return time.Unix(0, v).UTC(), wrapReadErr(err)
	case vtNull:
		return nil, newErr(ErrNotSupported, "null value element")
	default:
		return nil, newErr(ErrCorruptInput, fmt.Sprintf("unknown value type code %d", tag))
	}
}

func wrapReadErr(err error) error {
	if err == nil {
		return nil
	}
	return wrapErr(ErrCorruptInput, "reading value payload", err)
}
