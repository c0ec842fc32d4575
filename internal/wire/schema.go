package wire

// Schema is the payload shape for a record type: the ordered field kinds the
// record decoder drives through the RDATA. A single-primitive payload is a
// one-element schema.
type Schema []FieldKind

// rdataSchemas maps record types to their payload shapes (RFC 1035
// Section 3.3 onward). The map is the type registry the record decoder
// dispatches on; the decoder itself never inspects record semantics.
var rdataSchemas = map[RecordType]Schema{
	TypeA:     {KindIPv4},
	TypeNS:    {KindName},
	TypeCNAME: {KindName},
	TypeSOA:   {KindName, KindName, KindU32, KindU32, KindU32, KindU32, KindU32},
	TypeWKS:   {KindIPv4, KindU8, KindBlob},
	TypePTR:   {KindName},
	TypeHINFO: {KindString, KindString},
	TypeMX:    {KindU16, KindName},
	TypeTXT:   {KindString},
	TypeAAAA:  {KindIPv6},
	TypeSRV:   {KindU16, KindU16, KindU16, KindName},
}

// opaqueSchema carries RDATA of types this package has no shape for
// (OPT, DNSSEC, and anything unregistered) as a single raw byte run of
// RDLENGTH bytes. Unknown types are therefore carried, not rejected.
var opaqueSchema = Schema{KindBlob}

// SchemaFor returns the payload schema for a record type, falling back to
// the opaque byte-run schema for unknown types.
func SchemaFor(rt RecordType) Schema {
	if s, ok := rdataSchemas[rt]; ok {
		return s
	}
	return opaqueSchema
}
