// Package service implements the application's domain operations:
// user registration and deletion, card attachment and lookup, and
// balance history recording and retrieval. Services coordinate the
// store interfaces and own the transaction boundaries.
package service
