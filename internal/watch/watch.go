// Package watch implements a passive UDP tap that decodes every inbound
// DNS datagram and records a summary of it.
//
// The tap never answers: it exists to observe. Point clients (or a port
// mirror) at its socket and browse the capture store through the API.
package watch

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/jroosing/dnswire/internal/pool"
	"github.com/jroosing/dnswire/internal/stats"
	"github.com/jroosing/dnswire/internal/store"
	"github.com/jroosing/dnswire/internal/wire"
)

// Tap listens on a UDP socket and decodes each datagram it receives.
type Tap struct {
	Logger *slog.Logger       // Optional logger
	Store  *store.Store       // Optional capture store
	Stats  *stats.DecodeStats // Optional decode counters

	BufferSize int // Receive buffer size; defaults to wire.MaxIncomingMessageSize

	bufs *pool.Pool[*[]byte]
}

// Run listens on addr and processes datagrams until ctx is cancelled.
func (t *Tap) Run(ctx context.Context, addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	return t.RunOnConn(ctx, conn)
}

// RunOnConn runs the tap on an existing UDP connection. This is useful for
// testing and when the caller manages the socket.
func (t *Tap) RunOnConn(ctx context.Context, conn *net.UDPConn) error {
	defer conn.Close()

	size := t.BufferSize
	if size <= 0 {
		size = wire.MaxIncomingMessageSize
	}
	t.bufs = pool.New(func() *[]byte {
		b := make([]byte, size)
		return &b
	})

	for ctx.Err() == nil {
		data, remote, ok := t.receivePacket(ctx, conn)
		if !ok {
			continue
		}
		t.handlePacket(data, remote)
	}
	return nil
}

// receivePacket reads one UDP packet using a pooled buffer. The short read
// deadline keeps the loop responsive to context cancellation.
func (t *Tap) receivePacket(ctx context.Context, conn *net.UDPConn) ([]byte, *net.UDPAddr, bool) {
	bufPtr := t.bufs.Get()
	buf := *bufPtr
	defer t.bufs.Put(bufPtr)

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	n, remote, err := conn.ReadFromUDP(buf)
	if err != nil || remote == nil {
		return nil, nil, false
	}
	if ctx.Err() != nil {
		return nil, nil, false
	}

	// Copy data out of the pooled buffer.
	data := make([]byte, n)
	copy(data, buf[:n])
	return data, remote, true
}

// handlePacket decodes one datagram and records the outcome.
func (t *Tap) handlePacket(data []byte, remote *net.UDPAddr) {
	m, err := wire.Decode(data)
	if err != nil {
		if t.Stats != nil {
			t.Stats.RecordFailure(len(data))
		}
		if t.Logger != nil {
			t.Logger.Debug("undecodable datagram",
				"source", remote.String(), "size", len(data), "error", err)
		}
		return
	}

	records := len(m.Answers) + len(m.Authorities) + len(m.Additionals)
	if t.Stats != nil {
		t.Stats.RecordDecode(len(data), records, m.Header.Response)
	}
	if t.Logger != nil {
		t.Logger.Debug("decoded message",
			"source", remote.String(),
			"id", m.Header.ID,
			"response", m.Header.Response,
			"questions", len(m.Questions),
			"records", records,
		)
	}
	if t.Store != nil {
		if _, err := t.Store.Insert(summarize(m, remote.String(), len(data))); err != nil && t.Logger != nil {
			t.Logger.Warn("failed to store capture", "error", err)
		}
	}
}

// summarize converts a decoded message into a capture row.
func summarize(m wire.Message, source string, size int) store.Capture {
	c := store.Capture{
		ReceivedAt:  time.Now(),
		Source:      source,
		Size:        size,
		MsgID:       m.Header.ID,
		Response:    m.Header.Response,
		Opcode:      uint8(m.Header.Opcode),
		RCode:       uint8(m.Header.RCode),
		Questions:   len(m.Questions),
		Answers:     len(m.Answers),
		Authorities: len(m.Authorities),
		Additionals: len(m.Additionals),
	}
	if len(m.Questions) > 0 {
		c.QName = m.Questions[0].Name.String()
		c.QType = uint16(m.Questions[0].Type)
	}
	return c
}
