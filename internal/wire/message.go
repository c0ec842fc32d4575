package wire

import "fmt"

// Message is a fully decoded DNS message: the header plus the four record
// sections in wire order.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// Decode parses a complete DNS message from msg.
//
// The decode is a single forward pass: header first, then the question,
// answer, authority, and additional sections, each iterated for the count
// the header declared. The buffer must be consumed exactly; leftover bytes
// fail with [ErrTrailingGarbage]. On any error the partial message is
// discarded and the zero Message is returned.
//
// Decode copies every byte it keeps, so the caller may reuse msg as soon as
// the call returns. Calls are independent: concurrent decodes of separate
// buffers share no state.
func Decode(msg []byte) (Message, error) {
	st := newDecodeState(msg)

	h, err := decodeHeader(st)
	if err != nil {
		return Message{}, err
	}
	m := Message{Header: h}

	// Cap preallocation so a forged header with huge counts but a tiny
	// body cannot force a large allocation before the decode fails.
	m.Questions = make([]Question, 0, min(int(st.counts.questions), MaxQuestions))
	for i := uint16(0); i < st.counts.questions; i++ {
		q, err := decodeQuestion(st)
		if err != nil {
			return Message{}, err
		}
		m.Questions = append(m.Questions, q)
	}

	for _, section := range []struct {
		count uint16
		out   *[]Record
	}{
		{st.counts.answers, &m.Answers},
		{st.counts.authorities, &m.Authorities},
		{st.counts.additionals, &m.Additionals},
	} {
		*section.out = make([]Record, 0, min(int(section.count), MaxRRPerSection))
		for i := uint16(0); i < section.count; i++ {
			r, err := decodeRecord(st)
			if err != nil {
				return Message{}, err
			}
			*section.out = append(*section.out, r)
		}
	}

	if n := st.cur.Remaining(); n != 0 {
		return Message{}, fmt.Errorf("%w: %d bytes at offset %d",
			ErrTrailingGarbage, n, st.cur.Position())
	}
	return m, nil
}
