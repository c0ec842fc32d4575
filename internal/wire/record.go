package wire

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Record is one decoded resource record (RFC 1035 Section 4.1.3).
//
// Data holds the payload primitives in schema order for the record's type
// (see [SchemaFor]); unknown types carry a single opaque blob. The typed
// accessors below unwrap the common shapes.
type Record struct {
	Name  Name
	Type  RecordType
	Class RecordClass
	TTL   uint32
	Data  []Field
}

// decodeRecord consumes one resource record: name, ten-byte trailer
// {type, class, ttl, rdlength}, then the RDATA driven by the type's schema.
//
// The RDATA loop keeps a running remaining-length counter. Length-bounded
// primitives receive the remainder as their size; every other primitive
// sizes itself from the wire. After the last field the counter must be
// exactly zero, so both overruns and residue surface as a length mismatch.
func decodeRecord(st *decodeState) (Record, error) {
	name, _, err := decodeName(st.cur, st.names)
	if err != nil {
		return Record{}, fmt.Errorf("record name: %w", err)
	}
	b, err := st.cur.Read(10)
	if err != nil {
		return Record{}, fmt.Errorf("record trailer: %w", err)
	}
	rec := Record{
		Name:  name,
		Type:  RecordType(binary.BigEndian.Uint16(b[0:2])),
		Class: RecordClass(binary.BigEndian.Uint16(b[2:4])),
		TTL:   binary.BigEndian.Uint32(b[4:8]),
	}
	rdlen := int(binary.BigEndian.Uint16(b[8:10]))

	rdataStart := st.cur.Position()
	schema := SchemaFor(rec.Type)
	rec.Data = make([]Field, 0, len(schema))

	remaining := rdlen
	for _, kind := range schema {
		bound := 0
		if kind.lengthBounded() {
			bound = remaining
		}
		f, n, err := decodeField(st, kind, bound)
		if err != nil {
			return Record{}, fmt.Errorf("rdata for %s: %w", rec.Name, err)
		}
		remaining -= n
		if remaining < 0 {
			return Record{}, fmt.Errorf("%w: type %d consumed %d of %d declared bytes at offset %d",
				ErrRdataLengthMismatch, rec.Type, rdlen-remaining, rdlen, rdataStart)
		}
		rec.Data = append(rec.Data, f)
	}
	if remaining != 0 {
		return Record{}, fmt.Errorf("%w: type %d left %d of %d declared bytes at offset %d",
			ErrRdataLengthMismatch, rec.Type, remaining, rdlen, rdataStart)
	}
	return rec, nil
}

// IPv4 returns the address of an A record.
func (r Record) IPv4() (net.IP, bool) {
	if r.Type != TypeA || len(r.Data) != 1 || r.Data[0].Kind != KindIPv4 {
		return nil, false
	}
	return r.Data[0].IP, true
}

// IPv6 returns the address of an AAAA record.
func (r Record) IPv6() (net.IP, bool) {
	if r.Type != TypeAAAA || len(r.Data) != 1 || r.Data[0].Kind != KindIPv6 {
		return nil, false
	}
	return r.Data[0].IP, true
}

// Target returns the name payload of an NS, CNAME, or PTR record.
func (r Record) Target() (Name, bool) {
	switch r.Type {
	case TypeNS, TypeCNAME, TypePTR:
	default:
		return nil, false
	}
	if len(r.Data) != 1 || r.Data[0].Kind != KindName {
		return nil, false
	}
	return r.Data[0].Name, true
}

// TXT returns the character-string payload of a TXT record.
func (r Record) TXT() ([]byte, bool) {
	if r.Type != TypeTXT || len(r.Data) != 1 || r.Data[0].Kind != KindString {
		return nil, false
	}
	return r.Data[0].Text, true
}

// MX returns the preference and exchange of an MX record.
func (r Record) MX() (preference uint16, exchange Name, ok bool) {
	if r.Type != TypeMX || len(r.Data) != 2 {
		return 0, nil, false
	}
	return r.Data[0].U16, r.Data[1].Name, true
}

// SOAData is the unwrapped payload of an SOA record (RFC 1035 Section 3.3.13).
type SOAData struct {
	MName   Name
	RName   Name
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// SOA returns the unwrapped payload of an SOA record.
func (r Record) SOA() (SOAData, bool) {
	if r.Type != TypeSOA || len(r.Data) != 7 {
		return SOAData{}, false
	}
	return SOAData{
		MName:   r.Data[0].Name,
		RName:   r.Data[1].Name,
		Serial:  r.Data[2].U32,
		Refresh: r.Data[3].U32,
		Retry:   r.Data[4].U32,
		Expire:  r.Data[5].U32,
		Minimum: r.Data[6].U32,
	}, true
}

// SRVData is the unwrapped payload of an SRV record (RFC 2782).
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   Name
}

// SRV returns the unwrapped payload of an SRV record.
func (r Record) SRV() (SRVData, bool) {
	if r.Type != TypeSRV || len(r.Data) != 4 {
		return SRVData{}, false
	}
	return SRVData{
		Priority: r.Data[0].U16,
		Weight:   r.Data[1].U16,
		Port:     r.Data[2].U16,
		Target:   r.Data[3].Name,
	}, true
}

// Opaque returns the raw RDATA of a record decoded with the opaque schema.
func (r Record) Opaque() ([]byte, bool) {
	if len(r.Data) != 1 || r.Data[0].Kind != KindBlob {
		return nil, false
	}
	return r.Data[0].Blob, true
}
