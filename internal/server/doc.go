// Package server provides the HTTP server for the blog demo app.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// The package wires
//   - the /posts API (internal/blog/handlers)
//   - common infrastructure handlers (health, version, docs)
//
// middleware is in internal/server/middleware
package server
