// Package flowise implements a minimal client for the Flowise REST API.  It
// covers the two operations the adapter needs – listing chatflows and running
// a prediction – and classifies every failure into a typed Error so that
// callers can surface remote problems without terminating the process.
package flowise
