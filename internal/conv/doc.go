// Package conv provides small helpers to coerce values between maps, structs
// and primitives via a JSON round-trip, plus pointer convenience functions.
// Tool handlers use it to decode call arguments into typed inputs.
package conv
