package formats

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	minTime = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxTime = time.Date(2037, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

func randomTime(r Rand) time.Time {
	return time.Unix(minTime+r.Int64N(maxTime-minTime+1), 0).UTC()
}

// GenerateDateTime returns an RFC 3339 timestamp.
func GenerateDateTime(r Rand) string {
	return randomTime(r).Format(time.RFC3339)
}

// GenerateDate returns an RFC 3339 full-date.
func GenerateDate(r Rand) string {
	return randomTime(r).Format(time.DateOnly)
}

// GenerateTime returns an RFC 3339 full-time in UTC.
func GenerateTime(r Rand) string {
	return randomTime(r).Format("15:04:05Z07:00")
}

// GenerateEmail returns an address made of dictionary words.
func GenerateEmail(r Rand) string {
	return fmt.Sprintf("%s.%s@%s", Word(r), Word(r), GenerateHostname(r))
}

var topLevelDomains = []string{"com", "org", "net", "io", "dev", "example"}

// GenerateHostname returns a lowercase DNS name.
func GenerateHostname(r Rand) string {
	labels := []string{Word(r), Word(r), topLevelDomains[r.IntN(len(topLevelDomains))]}
	return strings.Join(labels, ".")
}

// GenerateIPv4 returns a dotted quad address.
func GenerateIPv4(r Rand) string {
	var b [4]byte
	for i := range b {
		b[i] = byte(r.IntN(256))
	}
	return netip.AddrFrom4(b).String()
}

// GenerateIPv6 returns an address in canonical RFC 5952 form.
func GenerateIPv6(r Rand) string {
	var b [16]byte
	fill(r, b[:])
	return netip.AddrFrom16(b).String()
}

// GenerateURI returns an absolute https URI.
func GenerateURI(r Rand) string {
	return fmt.Sprintf("https://%s/%s/%s", GenerateHostname(r), Word(r), Word(r))
}

// GenerateUUID returns a version 4 UUID drawn from r.
func GenerateUUID(r Rand) string {
	id, err := uuid.NewRandomFromReader(randReader{r})
	if err != nil {
		// randReader never fails
		panic(err)
	}
	return id.String()
}

type randReader struct {
	r Rand
}

func (rr randReader) Read(p []byte) (int, error) {
	fill(rr.r, p)
	return len(p), nil
}

func fill(r Rand, p []byte) {
	for i := 0; i < len(p); i += 8 {
		v := r.Uint64()
		for j := i; j < len(p) && j < i+8; j++ {
			p[j] = byte(v)
			v >>= 8
		}
	}
}
