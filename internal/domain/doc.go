// Package domain defines the core hospital entities shared across the
// backend: users, assistance requests, tasks, shifts and direct messages.
//
// All enumerations carry their wire representation. Request priority and
// status are stored upper-case; the assistant's tool schema speaks the
// lower-case variants, so both directions have parse helpers here.
package domain
