// Package main is the entry point for the patient call system backend.
//
// The server exposes a REST API for accounts, assistance requests,
// tasks, shifts and messages, plus a WebSocket endpoint that carries
// patient chat streams and staff notification rooms.
//
// Architecture:
//
//	Clients (patient app, nurse dashboard) → Go backend → Ollama (LLM)
//	                                                   → Postgres
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	./server -port 5000 -ollama http://localhost:11434
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
