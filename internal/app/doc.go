// Package app wires application dependencies for the CLI.
//
// LoadConfig reads the environment (and an optional .env file), NewWire
// builds the token store, session, transport and repositories from it, and
// App exposes the use cases the commands call.
package app
