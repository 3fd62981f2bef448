// Package server wires the call system together and owns its lifecycle.
//
// Server Lifecycle:
//  1. Load configuration from environment
//  2. Initialize logger and metrics
//  3. Connect to Postgres and the model service
//  4. Build the assistant pipeline (bridge, interpreter, toolset)
//  5. Start the WebSocket hub and REST routes
//  6. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.New(ctx, cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
