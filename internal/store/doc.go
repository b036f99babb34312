// Package store provides file-based persistence for the client's session.
//
// The only durable client state is the opaque session token, kept in a single
// file (TokenFilename) under the configured home directory. Writes go through
// a temp file and rename so a crash never leaves a half-written token behind.
// When a passphrase is configured the token is sealed with a key derived by
// scrypt and encrypted with ChaCha20-Poly1305.
package store
