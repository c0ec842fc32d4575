// Command dnsdump decodes a single DNS message and prints its contents.
//
// The message comes from a hex string (-hex, whitespace tolerated) or a
// binary file (-file). Exit status is non-zero when the message does not
// decode.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jroosing/dnswire/internal/wire"
)

func main() {
	var (
		hexInput = flag.String("hex", "", "Message as a hex string")
		filePath = flag.String("file", "", "Path to a file holding the raw message")
	)
	flag.Parse()

	msg, err := readMessage(*hexInput, *filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsdump error: %v\n", err)
		os.Exit(1)
	}

	m, err := wire.Decode(msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsdump error: %v\n", err)
		os.Exit(1)
	}

	printMessage(m, len(msg))
}

func readMessage(hexInput, filePath string) ([]byte, error) {
	switch {
	case hexInput != "" && filePath != "":
		return nil, fmt.Errorf("use either -hex or -file, not both")
	case hexInput != "":
		cleaned := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' {
				return -1
			}
			return r
		}, hexInput)
		return hex.DecodeString(cleaned)
	case filePath != "":
		return os.ReadFile(filePath)
	default:
		return nil, fmt.Errorf("one of -hex or -file is required")
	}
}

func printMessage(m wire.Message, size int) {
	kind := "query"
	if m.Header.Response {
		kind = "response"
	}
	fmt.Printf("%s id=%d opcode=%d rcode=%d aa=%t tc=%t rd=%t ra=%t (%d bytes)\n",
		kind, m.Header.ID, m.Header.Opcode, m.Header.RCode,
		m.Header.Authoritative, m.Header.Truncated,
		m.Header.RecursionDesired, m.Header.RecursionAvailable, size)

	for _, q := range m.Questions {
		fmt.Printf("question: %s type=%d class=%d\n", q.Name, q.Type, q.Class)
	}
	printSection("answer", m.Answers)
	printSection("authority", m.Authorities)
	printSection("additional", m.Additionals)
}

func printSection(label string, records []wire.Record) {
	for _, rr := range records {
		fmt.Printf("%s: %s\n", label, formatRR(rr))
	}
}

func formatRR(rr wire.Record) string {
	prefix := fmt.Sprintf("%s %d", rr.Name, rr.TTL)

	if ip, ok := rr.IPv4(); ok {
		return fmt.Sprintf("%s IN A %s", prefix, ip)
	}
	if ip, ok := rr.IPv6(); ok {
		return fmt.Sprintf("%s IN AAAA %s", prefix, ip)
	}
	if target, ok := rr.Target(); ok {
		return fmt.Sprintf("%s IN TYPE%d %s", prefix, rr.Type, target)
	}
	if pref, exchange, ok := rr.MX(); ok {
		return fmt.Sprintf("%s IN MX %d %s", prefix, pref, exchange)
	}
	if txt, ok := rr.TXT(); ok {
		return fmt.Sprintf("%s IN TXT %q", prefix, txt)
	}
	if soa, ok := rr.SOA(); ok {
		return fmt.Sprintf("%s IN SOA %s %s %d %d %d %d %d", prefix,
			soa.MName, soa.RName, soa.Serial, soa.Refresh, soa.Retry,
			soa.Expire, soa.Minimum)
	}
	if srv, ok := rr.SRV(); ok {
		return fmt.Sprintf("%s IN SRV %d %d %d %s", prefix,
			srv.Priority, srv.Weight, srv.Port, srv.Target)
	}
	if blob, ok := rr.Opaque(); ok {
		return fmt.Sprintf("%s IN TYPE%d \\# %d %x", prefix, rr.Type, len(blob), blob)
	}
	return fmt.Sprintf("%s IN TYPE%d (unformatted)", prefix, rr.Type)
}
