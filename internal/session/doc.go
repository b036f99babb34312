// Package session owns the authentication token lifecycle.
//
// A Store is the single owner of the process-wide session. It is hydrated
// once from durable storage at startup, and afterwards every reader sees the
// in-memory value; writes go to memory and disk together. Nothing outside
// this package touches the persisted token directly.
package session
