package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flowisehq/flowise-mcp/flowise"
)

// Options captures the raw filtering rules prior to compilation.
type Options struct {
	WhitelistIDs  []string
	BlacklistIDs  []string
	WhitelistName string
	BlacklistName string
}

// Filter is a compiled set of whitelist/blacklist rules.  Instances are
// immutable and safe for concurrent use.
type Filter struct {
	whitelistIDs  map[string]struct{}
	blacklistIDs  map[string]struct{}
	whitelistName *regexp.Regexp
	blacklistName *regexp.Regexp
}

// New compiles the supplied rules.  An invalid regular expression aborts
// startup.
func New(opts Options) (*Filter, error) {
	f := &Filter{
		whitelistIDs: toSet(opts.WhitelistIDs),
		blacklistIDs: toSet(opts.BlacklistIDs),
	}
	var err error
	if opts.WhitelistName != "" {
		if f.whitelistName, err = regexp.Compile(opts.WhitelistName); err != nil {
			return nil, fmt.Errorf("invalid whitelist name pattern %q: %w", opts.WhitelistName, err)
		}
	}
	if opts.BlacklistName != "" {
		if f.blacklistName, err = regexp.Compile(opts.BlacklistName); err != nil {
			return nil, fmt.Errorf("invalid blacklist name pattern %q: %w", opts.BlacklistName, err)
		}
	}
	return f, nil
}

// Apply returns the records admitted by the rules, preserving input order.
func (f *Filter) Apply(flows []flowise.Chatflow) []flowise.Chatflow {
	out := make([]flowise.Chatflow, 0, len(flows))
	for _, flow := range flows {
		if f.Admits(flow) {
			out = append(out, flow)
		}
	}
	return out
}

// Admits reports whether a single record passes the rules.  When whitelist
// rules exist only whitelisted records pass, and a whitelisted record is
// never excluded by blacklist rules.
func (f *Filter) Admits(flow flowise.Chatflow) bool {
	if f.hasWhitelist() {
		return f.whitelisted(flow)
	}
	if _, ok := f.blacklistIDs[flow.ID]; ok {
		return false
	}
	if f.blacklistName != nil && f.blacklistName.MatchString(flow.Name) {
		return false
	}
	return true
}

func (f *Filter) hasWhitelist() bool {
	return len(f.whitelistIDs) > 0 || f.whitelistName != nil
}

func (f *Filter) whitelisted(flow flowise.Chatflow) bool {
	if _, ok := f.whitelistIDs[flow.ID]; ok {
		return true
	}
	return f.whitelistName != nil && f.whitelistName.MatchString(flow.Name)
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}
