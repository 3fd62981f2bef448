// Package http provides the REST API for the call system.
//
// Endpoints cover account registration and login, assistance requests,
// nurse tasks, shift schedules and direct messages. Request and message
// mutations additionally fan out over the WebSocket hub so department
// dashboards update without polling.
//
// Endpoints:
//   - Health: /health
//   - Auth: /api/auth/register, /api/auth/login
//   - Requests: /api/requests, /api/requests/:id/status
//   - Nurses: /api/nurses, /api/nurses/:id/approval
//   - Tasks: /api/tasks, /api/tasks/:id
//   - Shifts: /api/shifts, /api/shifts/:id
//   - Messages: /api/messages, /api/messages/conversation, /api/messages/:id/read
package http
