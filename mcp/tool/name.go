package tool

import (
	"fmt"
	"strings"

	"github.com/flowisehq/flowise-mcp/flowise"
)

// fallbackName is used when a chatflow name normalises to nothing.
const fallbackName = "chatflow"

// idSuffixLen bounds the ID fragment appended on name collisions.
const idSuffixLen = 8

// Normalize converts a chatflow name into an identifier-safe tool name:
// lower-cased, with every run of non-alphanumeric characters collapsed into a
// single underscore.
func Normalize(name string) string {
	var b strings.Builder
	pendingUnderscore := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingUnderscore && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingUnderscore = false
			b.WriteRune(r)
			continue
		}
		pendingUnderscore = true
	}
	if b.Len() == 0 {
		return fallbackName
	}
	return b.String()
}

// Derive assigns each chatflow a unique tool name, preserving listing order.
// The first record with a given normalised name keeps it; later records that
// collide get an ID-derived suffix and, should the listing contain duplicated
// IDs as well, a numeric index on top.
func Derive(flows []flowise.Chatflow) []string {
	names := make([]string, len(flows))
	taken := make(map[string]struct{}, len(flows))
	for i, flow := range flows {
		candidate := Normalize(flow.Name)
		if _, dup := taken[candidate]; dup {
			candidate = candidate + "_" + idSuffix(flow.ID)
		}
		if _, dup := taken[candidate]; dup {
			base := candidate
			for n := 2; ; n++ {
				candidate = fmt.Sprintf("%s_%d", base, n)
				if _, dup := taken[candidate]; !dup {
					break
				}
			}
		}
		taken[candidate] = struct{}{}
		names[i] = candidate
	}
	return names
}

// idSuffix reduces a chatflow ID to its trailing identifier-safe characters.
func idSuffix(id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > idSuffixLen {
		s = s[len(s)-idSuffixLen:]
	}
	if s == "" {
		s = "0"
	}
	return s
}
