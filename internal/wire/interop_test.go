package wire

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests cross-check the decoder against an independent encoder:
// messages are packed with miekg/dns and decoded with this package.

func packMsg(t *testing.T, m *dns.Msg) []byte {
	t.Helper()
	buf, err := m.Pack()
	require.NoError(t, err)
	return buf
}

func header(name string, rrtype uint16) dns.RR_Header {
	return dns.RR_Header{Name: name, Rrtype: rrtype, Class: dns.ClassINET, Ttl: 3600}
}

func TestInteropQueryRoundTrip(t *testing.T) {
	q := new(dns.Msg)
	q.SetQuestion("www.example.com.", dns.TypeAAAA)
	q.Id = 0x4242

	m, err := Decode(packMsg(t, q))
	require.NoError(t, err)

	assert.Equal(t, uint16(0x4242), m.Header.ID)
	assert.False(t, m.Header.Response)
	assert.True(t, m.Header.RecursionDesired)
	require.Len(t, m.Questions, 1)
	assert.Equal(t, Name{"www", "example", "com"}, m.Questions[0].Name)
	assert.Equal(t, TypeAAAA, m.Questions[0].Type)
	assert.Equal(t, ClassIN, m.Questions[0].Class)
}

func TestInteropAnswerRecords(t *testing.T) {
	q := new(dns.Msg)
	q.SetQuestion("example.com.", dns.TypeA)

	resp := new(dns.Msg)
	resp.SetReply(q)
	resp.Answer = []dns.RR{
		&dns.A{Hdr: header("example.com.", dns.TypeA), A: net.IPv4(192, 0, 2, 1).To4()},
		&dns.AAAA{Hdr: header("example.com.", dns.TypeAAAA), AAAA: net.ParseIP("2001:db8::1")},
		&dns.CNAME{Hdr: header("example.com.", dns.TypeCNAME), Target: "target.example.com."},
		&dns.MX{Hdr: header("example.com.", dns.TypeMX), Preference: 10, Mx: "mail.example.com."},
		&dns.TXT{Hdr: header("example.com.", dns.TypeTXT), Txt: []string{"v=spf1 -all"}},
	}

	m, err := Decode(packMsg(t, resp))
	require.NoError(t, err)
	require.Len(t, m.Answers, 5)

	ip, ok := m.Answers[0].IPv4()
	require.True(t, ok)
	assert.Equal(t, "192.0.2.1", ip.String())

	ip, ok = m.Answers[1].IPv6()
	require.True(t, ok)
	assert.Equal(t, "2001:db8::1", ip.String())

	target, ok := m.Answers[2].Target()
	require.True(t, ok)
	assert.Equal(t, Name{"target", "example", "com"}, target)

	pref, exchange, ok := m.Answers[3].MX()
	require.True(t, ok)
	assert.Equal(t, uint16(10), pref)
	assert.Equal(t, Name{"mail", "example", "com"}, exchange)

	txt, ok := m.Answers[4].TXT()
	require.True(t, ok)
	assert.Equal(t, []byte("v=spf1 -all"), txt)
}

func TestInteropCompressedNames(t *testing.T) {
	// With compression on, miekg emits pointers for the repeated names;
	// every decoded name must still match its uncompressed original.
	q := new(dns.Msg)
	q.SetQuestion("deep.sub.example.com.", dns.TypeMX)

	resp := new(dns.Msg)
	resp.SetReply(q)
	resp.Compress = true
	resp.Answer = []dns.RR{
		&dns.MX{Hdr: header("deep.sub.example.com.", dns.TypeMX), Preference: 5, Mx: "mx1.sub.example.com."},
		&dns.MX{Hdr: header("deep.sub.example.com.", dns.TypeMX), Preference: 10, Mx: "mx2.sub.example.com."},
	}
	resp.Ns = []dns.RR{
		&dns.NS{Hdr: header("sub.example.com.", dns.TypeNS), Ns: "ns.example.com."},
	}

	packed := packMsg(t, resp)
	uncompressed := resp.Copy()
	uncompressed.Compress = false
	require.Greater(t, len(packMsg(t, uncompressed)), len(packed), "compression should shrink the message")

	m, err := Decode(packed)
	require.NoError(t, err)

	want := Name{"deep", "sub", "example", "com"}
	require.Len(t, m.Answers, 2)
	assert.True(t, m.Answers[0].Name.Equal(want))
	assert.True(t, m.Answers[1].Name.Equal(want))

	_, mx1, ok := m.Answers[0].MX()
	require.True(t, ok)
	assert.Equal(t, Name{"mx1", "sub", "example", "com"}, mx1)
	_, mx2, ok := m.Answers[1].MX()
	require.True(t, ok)
	assert.Equal(t, Name{"mx2", "sub", "example", "com"}, mx2)

	require.Len(t, m.Authorities, 1)
	target, ok := m.Authorities[0].Target()
	require.True(t, ok)
	assert.Equal(t, Name{"ns", "example", "com"}, target)
}

func TestInteropSOA(t *testing.T) {
	resp := new(dns.Msg)
	resp.SetQuestion("example.com.", dns.TypeSOA)
	resp.Response = true
	resp.Ns = []dns.RR{
		&dns.SOA{
			Hdr:     header("example.com.", dns.TypeSOA),
			Ns:      "ns1.example.com.",
			Mbox:    "hostmaster.example.com.",
			Serial:  2024010101,
			Refresh: 7200,
			Retry:   3600,
			Expire:  1209600,
			Minttl:  300,
		},
	}

	m, err := Decode(packMsg(t, resp))
	require.NoError(t, err)
	require.Len(t, m.Authorities, 1)

	soa, ok := m.Authorities[0].SOA()
	require.True(t, ok)
	assert.Equal(t, Name{"ns1", "example", "com"}, soa.MName)
	assert.Equal(t, Name{"hostmaster", "example", "com"}, soa.RName)
	assert.Equal(t, uint32(2024010101), soa.Serial)
	assert.Equal(t, uint32(300), soa.Minimum)
}

func TestInteropSRV(t *testing.T) {
	resp := new(dns.Msg)
	resp.SetQuestion("_sip._tcp.example.com.", dns.TypeSRV)
	resp.Response = true
	resp.Answer = []dns.RR{
		&dns.SRV{
			Hdr:      header("_sip._tcp.example.com.", dns.TypeSRV),
			Priority: 10,
			Weight:   60,
			Port:     5060,
			Target:   "sipserver.example.com.",
		},
	}

	m, err := Decode(packMsg(t, resp))
	require.NoError(t, err)
	require.Len(t, m.Answers, 1)

	srv, ok := m.Answers[0].SRV()
	require.True(t, ok)
	assert.Equal(t, uint16(10), srv.Priority)
	assert.Equal(t, uint16(60), srv.Weight)
	assert.Equal(t, uint16(5060), srv.Port)
	assert.Equal(t, Name{"sipserver", "example", "com"}, srv.Target)
}

func TestInteropUnknownTypeCarriedOpaquely(t *testing.T) {
	resp := new(dns.Msg)
	resp.SetQuestion("example.com.", dns.TypeCAA)
	resp.Response = true
	resp.Answer = []dns.RR{
		&dns.CAA{Hdr: header("example.com.", dns.TypeCAA), Flag: 0, Tag: "issue", Value: "ca.example.net"},
	}

	m, err := Decode(packMsg(t, resp))
	require.NoError(t, err)
	require.Len(t, m.Answers, 1)

	blob, ok := m.Answers[0].Opaque()
	require.True(t, ok)
	assert.NotEmpty(t, blob)
}

func TestInteropDecodeIsFast(t *testing.T) {
	// Guard against accidental quadratic behavior: a response stuffed
	// with compressed records should decode in linear-ish time.
	resp := new(dns.Msg)
	resp.SetQuestion("example.com.", dns.TypeA)
	resp.Response = true
	resp.Compress = true
	for i := 0; i < 100; i++ {
		resp.Answer = append(resp.Answer, &dns.A{
			Hdr: header("example.com.", dns.TypeA),
			A:   net.IPv4(192, 0, 2, byte(i+1)).To4(),
		})
	}
	packed := packMsg(t, resp)

	start := time.Now()
	m, err := Decode(packed)
	require.NoError(t, err)
	assert.Len(t, m.Answers, 100)
	assert.Less(t, time.Since(start), time.Second)
}
