// Command dnsprobe sends one DNS query over UDP and decodes the raw
// response with the dnswire decoder.
//
// The query itself is built with miekg/dns (this module does not encode);
// the response bytes never touch miekg on the way back, which makes the
// tool a convenient live exerciser for the decoder.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"github.com/jroosing/dnswire/internal/wire"
)

func main() {
	var (
		server   = flag.String("server", "8.8.8.8:53", "DNS server HOST:PORT")
		name     = flag.String("name", "example.com", "Query name")
		qtype    = flag.Int("qtype", 1, "Query type (numeric, A=1)")
		timeout  = flag.Duration("timeout", 2*time.Second, "Timeout")
		recvSize = flag.Int("recv-size", 2048, "UDP receive buffer size")
		quiet    = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	resp, err := queryUDP(*server, *name, uint16(*qtype), *timeout, *recvSize)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "dnsprobe error: %v\n", err)
		}
		os.Exit(1)
	}

	m, err := wire.Decode(resp)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "dnsprobe error: received %d bytes: %v\n", len(resp), err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	fmt.Printf("id=%d rcode=%d answers=%d authorities=%d additionals=%d\n",
		m.Header.ID, m.Header.RCode,
		len(m.Answers), len(m.Authorities), len(m.Additionals))

	for _, rr := range m.Answers {
		fmt.Println(formatAnswer(rr))
	}
}

func queryUDP(server, name string, qtype uint16, timeout time.Duration, recvSize int) ([]byte, error) {
	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, err
	}
	c, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	reqBytes, err := buildQuery(name, qtype)
	if err != nil {
		return nil, err
	}
	_ = c.SetDeadline(time.Now().Add(timeout))
	if _, err := c.Write(reqBytes); err != nil {
		return nil, err
	}
	buf := make([]byte, recvSize)
	n, err := c.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func buildQuery(name string, qtype uint16) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name required")
	}

	// IDNA-encode so non-ASCII names go out as punycode.
	punyName, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return nil, err
	}
	if !dns.IsFqdn(punyName) {
		punyName = dns.Fqdn(punyName)
	}

	q := new(dns.Msg)
	q.SetQuestion(punyName, qtype)
	q.Id = dns.Id()
	return q.Pack()
}

func formatAnswer(rr wire.Record) string {
	prefix := fmt.Sprintf("%s %d IN", rr.Name, rr.TTL)

	if ip, ok := rr.IPv4(); ok {
		return fmt.Sprintf("%s A %s", prefix, ip)
	}
	if ip, ok := rr.IPv6(); ok {
		return fmt.Sprintf("%s AAAA %s", prefix, ip)
	}
	if target, ok := rr.Target(); ok {
		return fmt.Sprintf("%s TYPE%d %s", prefix, rr.Type, target)
	}
	if pref, exchange, ok := rr.MX(); ok {
		return fmt.Sprintf("%s MX %d %s", prefix, pref, exchange)
	}
	if txt, ok := rr.TXT(); ok {
		return fmt.Sprintf("%s TXT %q", prefix, txt)
	}
	return fmt.Sprintf("%s TYPE%d (unformatted)", prefix, rr.Type)
}
