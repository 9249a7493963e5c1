// Package postgres implements the store interfaces against PostgreSQL
// using the database/sql API with the pgx driver.
package postgres
