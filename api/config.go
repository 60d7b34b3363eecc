// Package api provides the HTTP API server for product search and the
// conversational shopping assistant.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string
}
