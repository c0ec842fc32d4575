package wire

import (
	"encoding/binary"
	"fmt"
)

// Question is one entry of the question section (RFC 1035 Section 4.1.2).
type Question struct {
	Name  Name
	Type  RecordType
	Class RecordClass
}

// decodeQuestion consumes one question: a domain name followed by the
// four-byte {type, class} trailer.
func decodeQuestion(st *decodeState) (Question, error) {
	name, _, err := decodeName(st.cur, st.names)
	if err != nil {
		return Question{}, fmt.Errorf("question name: %w", err)
	}
	b, err := st.cur.Read(4)
	if err != nil {
		return Question{}, fmt.Errorf("question trailer: %w", err)
	}
	return Question{
		Name:  name,
		Type:  RecordType(binary.BigEndian.Uint16(b[0:2])),
		Class: RecordClass(binary.BigEndian.Uint16(b[2:4])),
	}, nil
}
