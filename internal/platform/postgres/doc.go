// Package postgres implements the store interfaces against PostgreSQL using
// database/sql with the pgx stdlib driver. Database errors are translated to
// store sentinel errors via MapError so callers never see driver types.
package postgres
