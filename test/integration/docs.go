// Package integration contains end-to-end tests for the blog posts API.
//
// Each test starts the server in-process against a real database (MongoDB and PostgreSQL),
// seeds 10 random posts, exercises the API over HTTP and cross-checks the persisted state
// through a separate store connection. The database is dropped after each test.
//
// The tests only run with the integration build tag:
//
//	go test -tags=integration ./test/integration
package integration
