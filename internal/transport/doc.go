// Package transport is the HTTP client every repository talks through.
//
// A Client attaches the session token as a bearer credential, bounds each
// call with the deployment timeout, and maps failures onto the domain error
// taxonomy:
//
//   - transport failures and timeouts become *domain.NetworkError
//   - non-2xx responses become *domain.ServerError, carrying the server's
//     "message" (or "error") field when one is present
//   - undecodable 2xx bodies become *domain.DecodeError
//   - a 401 to a call that carried a token tears the session down and
//     returns domain.ErrAuthExpired
//
// Session teardown is announced to subscribers registered with
// OnAuthExpired, once per expired token, so the hosting application can send
// the user back to its login entry point. Nothing is retried.
package transport
