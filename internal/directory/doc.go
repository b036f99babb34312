// Package directory derives the browsable views of the vendor directory.
//
// Every function here is pure and deterministic: the same vendors and
// parameters always produce the same ordered result, and the input slice is
// never modified. Search, category filter and proximity sort can be used on
// their own or composed through Engine.Apply, which runs them in that order.
package directory
