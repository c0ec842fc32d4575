package wire

import (
	"encoding/binary"
	"fmt"
	"net"
)

// FieldKind identifies one wire-level primitive of a record payload.
// The set is closed: every payload shape a record type can declare is an
// ordered sequence of these kinds.
type FieldKind uint8

const (
	KindU8     FieldKind = iota // 1 byte, unsigned
	KindU16                     // 2 bytes, big-endian
	KindU32                     // 4 bytes, big-endian
	KindIPv4                    // 4 octets, network order
	KindIPv6                    // 16 bytes (eight 16-bit groups)
	KindString                  // character-string: 1 length byte + up to 255 bytes
	KindName                    // domain name, possibly compressed
	KindBlob                    // opaque byte run of caller-supplied length
)

// lengthBounded reports whether the kind's size comes from the enclosing
// record's remaining RDLENGTH rather than from the wire data itself.
// Only the opaque blob consults the bound.
func (k FieldKind) lengthBounded() bool {
	return k == KindBlob
}

// Field is one decoded payload primitive: a tag plus the slot the decoder
// wrote into. Only the slot matching Kind is meaningful.
type Field struct {
	Kind FieldKind

	U8   uint8
	U16  uint16
	U32  uint32
	IP   net.IP
	Text []byte // character-string contents, length prefix stripped
	Name Name
	Blob []byte
}

// decodeField consumes one primitive of the given kind and returns the
// populated field plus the number of wire bytes consumed. bound is the
// record's remaining RDLENGTH and is consulted only by length-bounded kinds.
// Cursor failures propagate unchanged.
func decodeField(st *decodeState, kind FieldKind, bound int) (Field, int, error) {
	f := Field{Kind: kind}

	switch kind {
	case KindU8:
		b, err := st.cur.Read(1)
		if err != nil {
			return Field{}, 0, err
		}
		f.U8 = b[0]
		return f, 1, nil

	case KindU16:
		b, err := st.cur.Read(2)
		if err != nil {
			return Field{}, 0, err
		}
		f.U16 = binary.BigEndian.Uint16(b)
		return f, 2, nil

	case KindU32:
		b, err := st.cur.Read(4)
		if err != nil {
			return Field{}, 0, err
		}
		f.U32 = binary.BigEndian.Uint32(b)
		return f, 4, nil

	case KindIPv4:
		b, err := st.cur.Read(net.IPv4len)
		if err != nil {
			return Field{}, 0, err
		}
		f.IP = net.IP(append([]byte(nil), b...))
		return f, net.IPv4len, nil

	case KindIPv6:
		b, err := st.cur.Read(net.IPv6len)
		if err != nil {
			return Field{}, 0, err
		}
		f.IP = net.IP(append([]byte(nil), b...))
		return f, net.IPv6len, nil

	case KindString:
		b, err := st.cur.Read(1)
		if err != nil {
			return Field{}, 0, err
		}
		length := int(b[0])
		text, err := st.cur.Read(length)
		if err != nil {
			return Field{}, 0, err
		}
		f.Text = append([]byte(nil), text...)
		return f, 1 + length, nil

	case KindName:
		name, n, err := decodeName(st.cur, st.names)
		if err != nil {
			return Field{}, 0, err
		}
		f.Name = name
		return f, n, nil

	case KindBlob:
		b, err := st.cur.Read(bound)
		if err != nil {
			return Field{}, 0, err
		}
		f.Blob = append([]byte(nil), b...)
		return f, bound, nil

	default:
		return Field{}, 0, fmt.Errorf("unknown field kind %d", kind)
	}
}
