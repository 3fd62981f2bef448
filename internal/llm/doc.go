// Package llm bridges patient chat to the local Ollama model service.
//
// A chat turn flows through three stages:
//
//  1. Session builds the model request: fixed system prompt, prior
//     turns, then the new user message. The system prompt pins the model
//     to a JSON envelope {thoughts, response, function_call?}.
//  2. Bridge streams the model's reply token-by-token to a sink, framed
//     by Start/End chunks. The connection attempt is retried with
//     backoff and guarded by a circuit breaker; a liveness probe runs
//     before any streaming starts.
//  3. Interpreter parses the buffered envelope, validates any tool call
//     against the declared schema, executes it against the store, and
//     folds the outcome into the reply text.
//
// Assistant composes the three for the WebSocket handler. Model and
// store failures never escape as raw errors to the transport: every
// path ends in a well-formed Start/End pair with user-readable text in
// between.
package llm
