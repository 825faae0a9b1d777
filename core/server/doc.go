// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the API key guarding every route and
// the request and shutdown timeouts. It is embedded by core/config and consumed by
// the start command.
package server
