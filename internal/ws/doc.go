/*
Package ws carries the real-time side of the call system: patient chat
streams and staff notification rooms over a single WebSocket per client.

# Overview

Every frame on the wire is an Envelope {event, data}. Patients send
"chat message" and receive "chat response" token frames; nurses and
admins join a department room and receive "requestUpdate" events for
their department plus "messageRead" receipts addressed to them.

The Hub owns the membership table. Broadcasts are best-effort: a member
whose outbound queue is full is skipped, never waited on, so one stuck
connection cannot stall a department's notifications.

# Wire contract

Chat tokens are multiplexed on the "chat response" event as plain
strings, with "[START]" and "[END]" sentinels and an "[ERROR] " prefix
for failures. Internally chunks stay typed; the string encoding happens
once, at the transport edge.
*/
package ws
