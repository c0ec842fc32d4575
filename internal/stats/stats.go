// Package stats collects decode counters and process resource usage.
package stats

import (
	"os"
	"runtime"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/process"
)

// DecodeStats counts decode outcomes. All methods are safe for concurrent use.
type DecodeStats struct {
	messagesTotal  atomic.Uint64
	decodeFailures atomic.Uint64
	queries        atomic.Uint64
	responses      atomic.Uint64
	recordsTotal   atomic.Uint64
	bytesTotal     atomic.Uint64
}

// NewDecodeStats creates a new decode statistics collector.
func NewDecodeStats() *DecodeStats {
	return &DecodeStats{}
}

// RecordDecode records one successfully decoded message of the given size
// carrying the given number of resource records.
func (s *DecodeStats) RecordDecode(size, records int, response bool) {
	s.messagesTotal.Add(1)
	s.bytesTotal.Add(uint64(size))
	s.recordsTotal.Add(uint64(records))
	if response {
		s.responses.Add(1)
	} else {
		s.queries.Add(1)
	}
}

// RecordFailure records one datagram that failed to decode.
func (s *DecodeStats) RecordFailure(size int) {
	s.messagesTotal.Add(1)
	s.decodeFailures.Add(1)
	s.bytesTotal.Add(uint64(size))
}

// DecodeSnapshot is a point-in-time snapshot of the decode counters.
type DecodeSnapshot struct {
	MessagesTotal  uint64 `json:"messages_total"`
	DecodeFailures uint64 `json:"decode_failures"`
	Queries        uint64 `json:"queries"`
	Responses      uint64 `json:"responses"`
	RecordsTotal   uint64 `json:"records_total"`
	BytesTotal     uint64 `json:"bytes_total"`
}

// Snapshot returns the current counters.
func (s *DecodeStats) Snapshot() DecodeSnapshot {
	return DecodeSnapshot{
		MessagesTotal:  s.messagesTotal.Load(),
		DecodeFailures: s.decodeFailures.Load(),
		Queries:        s.queries.Load(),
		Responses:      s.responses.Load(),
		RecordsTotal:   s.recordsTotal.Load(),
		BytesTotal:     s.bytesTotal.Load(),
	}
}

// ProcessSnapshot describes the running process's resource usage.
type ProcessSnapshot struct {
	RSSBytes   uint64  `json:"rss_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
	Goroutines int     `json:"goroutines"`
}

// ProcessUsage samples the current process. Fields that cannot be sampled
// on the platform are left zero rather than failing the snapshot.
func ProcessUsage() ProcessSnapshot {
	snap := ProcessSnapshot{Goroutines: runtime.NumGoroutine()}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return snap
	}
	if mi, err := p.MemoryInfo(); err == nil && mi != nil {
		snap.RSSBytes = mi.RSS
	}
	if cp, err := p.CPUPercent(); err == nil {
		snap.CPUPercent = cp
	}
	return snap
}
