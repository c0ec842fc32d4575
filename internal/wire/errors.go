// Package wire implements a single-pass decoder for DNS messages in wire
// format (RFC 1035 Section 4.1).
//
// The decoder consumes one fully materialised byte buffer and produces a
// [Message]. Decoding is all-or-nothing: the first protocol violation aborts
// the decode and any partially built state is discarded. A successful decode
// consumes the buffer exactly; surplus bytes are an error.
//
// Standards Compliance:
//
//   - RFC 1035: Domain Names - Implementation and Specification (core protocol)
//   - RFC 1034: Domain Names - Concepts and Facilities
//   - RFC 2782: DNS SRV records
//   - RFC 3596: DNS Extensions to Support IPv6 (AAAA records)
//
// Error Handling:
//
// Decode failures belong to a closed set of sentinel errors declared in this
// file. Call sites wrap them with byte-offset context using
// fmt.Errorf("...: %w", err), so errors.Is works against the sentinels while
// the message still points at the offending position in the buffer.
//
// Serialization back to wire format is out of scope for this package.
package wire

import "errors"

var (
	// ErrIncomplete means a read ran past the end of the message buffer.
	ErrIncomplete = errors.New("dns wire: unexpected end of message")

	// ErrTrailingGarbage means bytes remained after all declared sections
	// were consumed.
	ErrTrailingGarbage = errors.New("dns wire: trailing bytes after message")

	// ErrInvalidLabelType means a label length octet used one of the two
	// reserved top-bit patterns (01 or 10).
	ErrInvalidLabelType = errors.New("dns wire: invalid label type")

	// ErrUnresolvedPointer means a compression pointer targeted an offset
	// where no literal label has been decoded.
	ErrUnresolvedPointer = errors.New("dns wire: unresolved compression pointer")

	// ErrNameTooLong means a decoded name exceeds 255 wire bytes (RFC 1035
	// Section 2.3.4).
	ErrNameTooLong = errors.New("dns wire: name exceeds 255 bytes")

	// ErrLabelTooLong means a literal label claimed more than 63 bytes.
	// The label type check already excludes this on well-formed input.
	ErrLabelTooLong = errors.New("dns wire: label exceeds 63 bytes")

	// ErrRdataLengthMismatch means a record's payload decoders consumed a
	// number of bytes different from the declared RDLENGTH.
	ErrRdataLengthMismatch = errors.New("dns wire: rdata length mismatch")

	// ErrOffsetOutOfRange means an absolute-offset lookup landed outside
	// the message buffer.
	ErrOffsetOutOfRange = errors.New("dns wire: offset out of range")
)
