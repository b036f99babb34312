// Package menu keeps the locally cached menu of one vendor and applies
// add, edit and delete optimistically.
//
// Every mutation is reflected in Items before the network call returns and
// is undone if the call fails, so the cache always matches either the
// pre-call state or the server-confirmed state. A List for another vendor, or
// Reset, starts a new generation; responses that belong to an older
// generation are dropped instead of being applied.
package menu
