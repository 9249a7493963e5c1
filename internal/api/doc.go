// Package api contains the HTTP handlers, request/response payloads and
// the error-to-status mapping for the bookkeeping endpoints.
package api
