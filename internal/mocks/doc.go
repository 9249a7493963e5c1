// Package mocks provides in-memory implementations of the store interfaces
// for testing. Every method can be overridden per-test through its function
// field; without an override a simple map-backed default is used.
package mocks
