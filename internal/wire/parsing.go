package wire

import (
	"errors"
	"fmt"
)

// Limits for untrusted inbound DNS messages to prevent resource exhaustion.
const (
	MaxIncomingMessageSize = 4096 // Maximum size of an inbound DNS message
	MaxQuestions           = 4    // Maximum questions per query (RFC allows 1 typically)
	MaxRRPerSection        = 100  // Maximum resource records per section
	MaxTotalRR             = 200  // Maximum total resource records
)

// DecodeRequestBounded decodes a DNS message received from an untrusted
// peer and validates it as a standard query.
//
// Returns an error if:
//   - The message exceeds MaxIncomingMessageSize
//   - The QR flag is set (the packet is a response, not a query)
//   - The opcode is not QUERY
//   - The section sizes exceed the limits above
func DecodeRequestBounded(msg []byte) (Message, error) {
	if len(msg) > MaxIncomingMessageSize {
		return Message{}, errors.New("dns message too large")
	}
	m, err := Decode(msg)
	if err != nil {
		return Message{}, err
	}

	if m.Header.Response {
		return Message{}, errors.New("invalid packet: QR flag set (response packet received)")
	}
	if m.Header.Opcode != OpcodeQuery {
		return Message{}, fmt.Errorf("unsupported opcode: %d", m.Header.Opcode)
	}
	if err := validateSectionSizes(m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// validateSectionSizes checks the decoded section sizes against the limits.
func validateSectionSizes(m Message) error {
	qd := len(m.Questions)
	an := len(m.Answers)
	ns := len(m.Authorities)
	ar := len(m.Additionals)

	if qd > MaxQuestions {
		return errors.New("too many questions")
	}
	if qd != 1 {
		return errors.New("unsupported question count")
	}
	if an > MaxRRPerSection || ns > MaxRRPerSection || ar > MaxRRPerSection {
		return errors.New("too many resource records")
	}
	if an+ns+ar > MaxTotalRR {
		return errors.New("too many total resource records")
	}
	return nil
}
