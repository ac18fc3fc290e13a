// Package filter applies whitelist/blacklist rules to remote chatflow
// listings.  Rules match either exact chatflow IDs or chatflow names by
// regular expression; whitelist membership always wins over blacklist rules.
package filter
