// Package codec is the fixed-width binary layout of persisted records. Every
// record starts with an 8-byte type tag followed by little-endian fields and
// is zero-padded to its allocation size.
package codec

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"rentby-escrow/internal/domain"
)

const (
	TagLen = 8

	RentalAgreementLen = TagLen + 32 + 32 + 32 + 8 + 8 + 8 + 1 + 1
	ResourceLen        = TagLen + 32 + 32 + 4 + domain.MaxResourceTypeLen + 4 + domain.MaxResourceSpecsLen + 8 + 4 + 4 + 8 + 1
)

// Kind names a record type. Its tag is the first 8 bytes of
// SHA-256("account:" + kind).
type Kind string

const (
	KindRentalAgreement Kind = "RentalAgreement"
	KindResource        Kind = "Resource"
)

func (k Kind) Tag() [TagLen]byte {
	var tag [TagLen]byte
	sum := sha256.Sum256([]byte("account:" + string(k)))
	copy(tag[:], sum[:TagLen])
	return tag
}

// Size is the allocation size of a record of this kind.
func (k Kind) Size() int {
	switch k {
	case KindRentalAgreement:
		return RentalAgreementLen
	case KindResource:
		return ResourceLen
	}
	return 0
}

// KindOf identifies a record from its tag.
func KindOf(data []byte) (Kind, error) {
	if len(data) < TagLen {
		return "", fmt.Errorf("%w: %d bytes", domain.ErrCorruptRecord, len(data))
	}
	for _, k := range []Kind{KindRentalAgreement, KindResource} {
		if tag := k.Tag(); string(tag[:]) == string(data[:TagLen]) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tag %x", domain.ErrRecordTypeMismatch, data[:TagLen])
}

type encoder struct {
	buf []byte
}

func newEncoder(k Kind) *encoder {
	tag := k.Tag()
	e := &encoder{buf: make([]byte, 0, k.Size())}
	e.buf = append(e.buf, tag[:]...)
	return e
}

func (e *encoder) identity(id domain.Identity) { e.buf = append(e.buf, id[:]...) }
func (e *encoder) uint8(v uint8)               { e.buf = append(e.buf, v) }
func (e *encoder) uint32(v uint32)             { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) uint64(v uint64)             { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }
func (e *encoder) int32(v int32)               { e.uint32(uint32(v)) }
func (e *encoder) int64(v int64)               { e.uint64(uint64(v)) }

func (e *encoder) string(s string, max int) error {
	if len(s) > max {
		return fmt.Errorf("%w: %d bytes, max %d", domain.ErrFieldTooLong, len(s), max)
	}
	e.uint32(uint32(len(s)))
	e.buf = append(e.buf, s...)
	return nil
}

// finish pads the record to its allocation size.
func (e *encoder) finish(size int) []byte {
	out := make([]byte, size)
	copy(out, e.buf)
	return out
}

type decoder struct {
	buf []byte
	off int
	err error
}

func newDecoder(k Kind, data []byte) (*decoder, error) {
	if len(data) != k.Size() {
		return nil, fmt.Errorf("%w: %s is %d bytes, expected %d", domain.ErrCorruptRecord, k, len(data), k.Size())
	}
	tag := k.Tag()
	if string(data[:TagLen]) != string(tag[:]) {
		return nil, fmt.Errorf("%w: expected %s", domain.ErrRecordTypeMismatch, k)
	}
	return &decoder{buf: data, off: TagLen}, nil
}

func (d *decoder) next(n int) []byte {
	if d.err != nil {
		return make([]byte, n)
	}
	if d.off+n > len(d.buf) {
		d.err = fmt.Errorf("%w: truncated at offset %d", domain.ErrCorruptRecord, d.off)
		return make([]byte, n)
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) identity() (id domain.Identity) {
	copy(id[:], d.next(domain.IdentityLen))
	return
}

func (d *decoder) uint8() uint8   { return d.next(1)[0] }
func (d *decoder) uint32() uint32 { return binary.LittleEndian.Uint32(d.next(4)) }
func (d *decoder) uint64() uint64 { return binary.LittleEndian.Uint64(d.next(8)) }
func (d *decoder) int32() int32   { return int32(d.uint32()) }
func (d *decoder) int64() int64   { return int64(d.uint64()) }

func (d *decoder) string(max int) string {
	n := d.uint32()
	if d.err == nil && int(n) > max {
		d.err = fmt.Errorf("%w: string length %d exceeds %d", domain.ErrCorruptRecord, n, max)
		return ""
	}
	return string(d.next(int(n)))
}
