// Package formats provides string generators for the JSON Schema formats the
// fixture generator recognizes, along with the word source used for free
// text and property names.
package formats

import "slices"

// Rand is the randomness a provider draws from. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
	Uint64() uint64
	Float64() float64
}

// Provider returns a string conforming to a format.
type Provider func(r Rand) string

// Recognized format names.
const (
	DateTime = "date-time"
	Date     = "date"
	Time     = "time"
	Email    = "email"
	Hostname = "hostname"
	IPv4     = "ipv4"
	IPv6     = "ipv6"
	URI      = "uri"
	UUID     = "uuid"
)

var recognized = []string{DateTime, Date, Time, Email, Hostname, IPv4, IPv6, URI, UUID}

// Recognized returns the format names a string schema may keep.
func Recognized() []string {
	return slices.Clone(recognized)
}

// IsRecognized reports whether name is one of the recognized formats.
func IsRecognized(name string) bool {
	return slices.Contains(recognized, name)
}

// Registry maps a format name to its provider.
type Registry map[string]Provider

// Default returns a fresh registry holding a provider for every recognized format.
func Default() Registry {
	return Registry{
		DateTime: GenerateDateTime,
		Date:     GenerateDate,
		Time:     GenerateTime,
		Email:    GenerateEmail,
		Hostname: GenerateHostname,
		IPv4:     GenerateIPv4,
		IPv6:     GenerateIPv6,
		URI:      GenerateURI,
		UUID:     GenerateUUID,
	}
}

// Lookup returns the provider for name.
func (r Registry) Lookup(name string) (Provider, bool) {
	p, ok := r[name]
	return p, ok && p != nil
}
