// Package client contains the transport side of the shopadmin client.
//
// # Overview
//
// The package provides:
//  1. The REST contract of the admin backend (see the Client interface):
//     session endpoints, categories, partners, products, quotations and
//     contact submissions.
//  2. HTTPClient, a net/http implementation. The server-issued session cookie
//     is kept in a cookie jar persisted to the local database, so a restarted
//     client can re-validate its previous session. An optional bearer token is
//     attached to product mutations while it has not expired.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which unwraps to one of the
// sentinels ErrUnauthorized, ErrForbidden, ErrNotFound, ErrBadRequest or
// ErrUnavailable. Network failures wrap ErrUnavailable. Match with errors.Is.
//
// No timeouts or retries are applied beyond the caller's context.
package client
