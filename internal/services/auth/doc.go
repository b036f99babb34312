// Package auth signs vendors in, registers new shops and signs out.
//
// Successful login and registration store the returned token in the
// session; logout clears it. Registration input is checked locally before
// anything is sent.
package auth
