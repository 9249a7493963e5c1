// Package store provides abstractions for data persistence.
// Concrete implementations live in internal/platform/postgres;
// tests use the function-field mocks in internal/mocks.
package store
