// Command dnsbench measures decoder throughput against synthetic
// responses of configurable size.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/miekg/dns"

	"github.com/jroosing/dnswire/internal/wire"
)

func main() {
	var (
		iterations = flag.Int("n", 100000, "Number of decode iterations")
		answers    = flag.Int("answers", 10, "A records per synthetic response")
		compress   = flag.Bool("compress", true, "Compress names in the synthetic response")
	)
	flag.Parse()

	msg, err := syntheticResponse(*answers, *compress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsbench error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	for i := 0; i < *iterations; i++ {
		if _, err := wire.Decode(msg); err != nil {
			fmt.Fprintf(os.Stderr, "dnsbench error: decode failed: %v\n", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	perOp := elapsed / time.Duration(*iterations)
	rate := float64(*iterations) / elapsed.Seconds()
	fmt.Printf("decoded %d messages of %d bytes in %s (%.0f msg/s, %s/op)\n",
		*iterations, len(msg), elapsed.Round(time.Millisecond), rate, perOp)
}

func syntheticResponse(answers int, compress bool) ([]byte, error) {
	m := new(dns.Msg)
	m.SetQuestion("bench.example.com.", dns.TypeA)
	m.Response = true
	m.Compress = compress
	for i := 0; i < answers; i++ {
		m.Answer = append(m.Answer, &dns.A{
			Hdr: dns.RR_Header{
				Name:   "bench.example.com.",
				Rrtype: dns.TypeA,
				Class:  dns.ClassINET,
				Ttl:    300,
			},
			A: net.IPv4(192, 0, 2, byte(i%250+1)).To4(),
		})
	}
	return m.Pack()
}
