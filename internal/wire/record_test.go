package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rrWire builds a resource record: name wire bytes, type, class, ttl,
// rdlength, rdata.
func rrWire(name []byte, rt RecordType, class RecordClass, ttl uint32, rdata []byte) []byte {
	b := append([]byte(nil), name...)
	b = append(b,
		byte(rt>>8), byte(rt),
		byte(class>>8), byte(class),
		byte(ttl>>24), byte(ttl>>16), byte(ttl>>8), byte(ttl),
		byte(len(rdata)>>8), byte(len(rdata)),
	)
	return append(b, rdata...)
}

func TestDecodeRecordA(t *testing.T) {
	msg := rrWire(nameWire("example", "com"), TypeA, ClassIN, 300, []byte{192, 0, 2, 1})

	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	assert.Equal(t, Name{"example", "com"}, rec.Name)
	assert.Equal(t, TypeA, rec.Type)
	assert.Equal(t, ClassIN, rec.Class)
	assert.Equal(t, uint32(300), rec.TTL)

	ip, ok := rec.IPv4()
	require.True(t, ok)
	assert.Equal(t, "192.0.2.1", ip.String())
}

func TestDecodeRecordSOA(t *testing.T) {
	rdata := append([]byte(nil), nameWire("ns1", "example", "com")...)
	rdata = append(rdata, nameWire("hostmaster", "example", "com")...)
	rdata = append(rdata,
		0x00, 0x00, 0x00, 0x01, // serial
		0x00, 0x00, 0x1C, 0x20, // refresh 7200
		0x00, 0x00, 0x0E, 0x10, // retry 3600
		0x00, 0x0D, 0x2F, 0x00, // expire 864000
		0x00, 0x00, 0x01, 0x2C, // minimum 300
	)
	msg := rrWire(nameWire("example", "com"), TypeSOA, ClassIN, 86400, rdata)

	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	soa, ok := rec.SOA()
	require.True(t, ok)
	assert.Equal(t, Name{"ns1", "example", "com"}, soa.MName)
	assert.Equal(t, Name{"hostmaster", "example", "com"}, soa.RName)
	assert.Equal(t, uint32(1), soa.Serial)
	assert.Equal(t, uint32(7200), soa.Refresh)
	assert.Equal(t, uint32(3600), soa.Retry)
	assert.Equal(t, uint32(864000), soa.Expire)
	assert.Equal(t, uint32(300), soa.Minimum)
}

func TestDecodeRecordTXT(t *testing.T) {
	rdata := []byte{11, 'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd'}
	msg := rrWire(nameWire("example", "com"), TypeTXT, ClassIN, 60, rdata)

	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	txt, ok := rec.TXT()
	require.True(t, ok)
	assert.Equal(t, []byte("hello world"), txt)
}

func TestDecodeRecordWKSBitmap(t *testing.T) {
	// Address + protocol + whatever bitmap bytes remain of the rdata.
	rdata := []byte{192, 0, 2, 1, 6, 0x00, 0x40, 0x01}
	msg := rrWire(nameWire("example", "com"), TypeWKS, ClassIN, 60, rdata)

	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	require.Len(t, rec.Data, 3)
	assert.Equal(t, "192.0.2.1", rec.Data[0].IP.String())
	assert.Equal(t, uint8(6), rec.Data[1].U8)
	assert.Equal(t, []byte{0x00, 0x40, 0x01}, rec.Data[2].Blob)
}

func TestDecodeRecordHINFO(t *testing.T) {
	rdata := []byte{3, 'V', 'A', 'X', 4, 'U', 'N', 'I', 'X'}
	msg := rrWire(nameWire("host", "example", "com"), TypeHINFO, ClassIN, 60, rdata)

	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	require.Len(t, rec.Data, 2)
	assert.Equal(t, []byte("VAX"), rec.Data[0].Text)
	assert.Equal(t, []byte("UNIX"), rec.Data[1].Text)
}

func TestDecodeRecordSRV(t *testing.T) {
	rdata := []byte{0x00, 0x0A, 0x00, 0x05, 0x14, 0x95}
	rdata = append(rdata, nameWire("sip", "example", "com")...)
	msg := rrWire(nameWire("_sip", "_tcp", "example", "com"), TypeSRV, ClassIN, 60, rdata)

	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	srv, ok := rec.SRV()
	require.True(t, ok)
	assert.Equal(t, uint16(10), srv.Priority)
	assert.Equal(t, uint16(5), srv.Weight)
	assert.Equal(t, uint16(5269), srv.Port)
	assert.Equal(t, Name{"sip", "example", "com"}, srv.Target)
}

func TestDecodeRecordUnknownTypeIsOpaque(t *testing.T) {
	rdata := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	msg := rrWire(nameWire("example", "com"), RecordType(99), ClassIN, 60, rdata)

	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	blob, ok := rec.Opaque()
	require.True(t, ok)
	assert.Equal(t, rdata, blob)
}

func TestDecodeRecordRdataLengthMismatch(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
	}{
		{
			// A record payload is 4 bytes; rdlength claims 5.
			"residue after fixed-width field",
			func() []byte {
				b := rrWire(nameWire("example", "com"), TypeA, ClassIN, 60, []byte{192, 0, 2, 1, 0})
				return b
			}(),
		},
		{
			// MX whose exchange name ends one byte before rdlength.
			"residue after composite",
			rrWire(nameWire("example", "com"), TypeMX, ClassIN, 60,
				append(append([]byte{0, 10}, nameWire("mail", "example", "com")...), 0xFF)),
		},
		{
			// TXT character-string shorter than the declared rdlength.
			"residue after character-string",
			rrWire(nameWire("example", "com"), TypeTXT, ClassIN, 60, []byte{2, 'h', 'i', 0, 0}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeRecord(newDecodeState(tt.msg))
			assert.ErrorIs(t, err, ErrRdataLengthMismatch)
		})
	}
}

func TestDecodeRecordRdataOverrun(t *testing.T) {
	// rdlength says 2 but the A schema wants 4 bytes; the record consumes
	// past its declared payload, which is a length mismatch even though
	// the bytes exist in the buffer (they belong to the next record).
	msg := rrWire(nameWire("example", "com"), TypeA, ClassIN, 60, []byte{192, 0})
	msg = append(msg, 2, 1) // bytes that belong to whatever follows

	_, err := decodeRecord(newDecodeState(msg))
	assert.ErrorIs(t, err, ErrRdataLengthMismatch)
}

func TestDecodeRecordTruncated(t *testing.T) {
	full := rrWire(nameWire("example", "com"), TypeA, ClassIN, 300, []byte{192, 0, 2, 1})
	for n := 0; n < len(full); n++ {
		_, err := decodeRecord(newDecodeState(full[:n]))
		assert.Error(t, err, "prefix of %d bytes", n)
	}
}

func TestRecordAccessorTypeGuards(t *testing.T) {
	msg := rrWire(nameWire("example", "com"), TypeA, ClassIN, 300, []byte{192, 0, 2, 1})
	rec, err := decodeRecord(newDecodeState(msg))
	require.NoError(t, err)

	_, ok := rec.IPv6()
	assert.False(t, ok)
	_, _, ok = rec.MX()
	assert.False(t, ok)
	_, ok = rec.Target()
	assert.False(t, ok)
	_, ok = rec.Opaque()
	assert.False(t, ok)
}
