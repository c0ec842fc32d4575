package wire

// sectionCounts holds the four expected record counts from the header.
type sectionCounts struct {
	questions   uint16
	answers     uint16
	authorities uint16
	additionals uint16
}

// decodeState bundles the per-message decode machinery: the cursor over the
// buffer, the compression table, and the section counts read from the
// header. One decodeState serves exactly one Decode call and is discarded
// when it returns, so concurrent decodes share nothing.
type decodeState struct {
	cur    *Cursor
	names  *nameTable
	counts sectionCounts
}

func newDecodeState(msg []byte) *decodeState {
	return &decodeState{
		cur:   NewCursor(msg),
		names: newNameTable(),
	}
}
