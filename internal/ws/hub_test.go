package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

func drain(c *Client) [][]byte {
	var frames [][]byte
	for {
		select {
		case frame := <-c.send:
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func decodeFrame(t *testing.T, frame []byte) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	return env
}

func TestHubDepartmentRouting(t *testing.T) {
	hub := NewHub(nil, nil)

	cardio := newClient("nurse-1", domain.RoleNurse)
	neuro := newClient("nurse-2", domain.RoleNurse)
	hub.Register(cardio)
	hub.Register(neuro)
	hub.Join(cardio.ID, domain.RoleNurse, "Cardiology")
	hub.Join(neuro.ID, domain.RoleNurse, "Neurology")

	hub.BroadcastNewRequest(&domain.Request{
		ID:         "req-1",
		Department: "Cardiology",
		Priority:   domain.PriorityHigh,
	})

	frames := drain(cardio)
	require.Len(t, frames, 1)
	env := decodeFrame(t, frames[0])
	assert.Equal(t, EventRequestUpdate, env.Event)

	var event domain.Event
	require.NoError(t, json.Unmarshal(env.Data, &event))
	assert.Equal(t, domain.EventNew, event.Type)
	assert.Equal(t, "req-1", event.Request.ID)

	assert.Empty(t, drain(neuro))
}

func TestHubBroadcastOrderPerDepartment(t *testing.T) {
	hub := NewHub(nil, nil)
	nurse := newClient("nurse-1", domain.RoleNurse)
	hub.Register(nurse)
	hub.Join(nurse.ID, domain.RoleNurse, "Surgery")

	hub.BroadcastNewRequest(&domain.Request{ID: "req-1", Department: "Surgery"})
	hub.BroadcastRequestUpdate(&domain.Request{ID: "req-1", Department: "Surgery"})

	frames := drain(nurse)
	require.Len(t, frames, 2)

	var first, second domain.Event
	require.NoError(t, json.Unmarshal(decodeFrame(t, frames[0]).Data, &first))
	require.NoError(t, json.Unmarshal(decodeFrame(t, frames[1]).Data, &second))
	assert.Equal(t, domain.EventNew, first.Type)
	assert.Equal(t, domain.EventUpdate, second.Type)
}

func TestHubJoinRequiresPrivilegedRole(t *testing.T) {
	hub := NewHub(nil, nil)
	patient := newClient("patient-1", domain.RolePatient)
	hub.Register(patient)

	// Silent no-op; the connection stays out of the room.
	hub.Join(patient.ID, domain.RolePatient, "Cardiology")
	hub.BroadcastNewRequest(&domain.Request{ID: "req-1", Department: "Cardiology"})

	assert.Empty(t, drain(patient))
}

func TestHubRejoinMovesDepartment(t *testing.T) {
	hub := NewHub(nil, nil)
	nurse := newClient("nurse-1", domain.RoleNurse)
	hub.Register(nurse)

	hub.Join(nurse.ID, domain.RoleNurse, "Cardiology")
	hub.Join(nurse.ID, domain.RoleNurse, "Neurology")

	hub.BroadcastNewRequest(&domain.Request{ID: "req-1", Department: "Cardiology"})
	assert.Empty(t, drain(nurse))

	hub.BroadcastNewRequest(&domain.Request{ID: "req-2", Department: "Neurology"})
	assert.Len(t, drain(nurse), 1)
}

func TestHubSkipsUnreachableMember(t *testing.T) {
	hub := NewHub(nil, nil)
	stuck := newClient("nurse-1", domain.RoleNurse)
	healthy := newClient("nurse-2", domain.RoleNurse)
	hub.Register(stuck)
	hub.Register(healthy)
	hub.Join(stuck.ID, domain.RoleNurse, "Oncology")
	hub.Join(healthy.ID, domain.RoleNurse, "Oncology")

	// Fill the stuck member's queue so the next broadcast cannot land.
	for i := 0; i < sendBuffer; i++ {
		stuck.send <- []byte("{}")
	}

	hub.BroadcastNewRequest(&domain.Request{ID: "req-1", Department: "Oncology"})

	// The healthy member still gets the event; nothing blocked.
	assert.Len(t, drain(healthy), 1)
	assert.Len(t, drain(stuck), sendBuffer)
}

func TestHubMessageReadTargetsUser(t *testing.T) {
	hub := NewHub(nil, nil)
	sender := newClient("user-1", domain.RoleNurse)
	other := newClient("user-2", domain.RoleNurse)
	hub.Register(sender)
	hub.Register(other)

	hub.BroadcastMessageRead("user-1", "msg-1")

	frames := drain(sender)
	require.Len(t, frames, 1)
	env := decodeFrame(t, frames[0])
	assert.Equal(t, EventMessageRead, env.Event)
	assert.JSONEq(t, `{"messageId": "msg-1"}`, string(env.Data))

	assert.Empty(t, drain(other))
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub(nil, nil)
	nurse := newClient("nurse-1", domain.RoleNurse)
	hub.Register(nurse)
	hub.Join(nurse.ID, domain.RoleNurse, "Cardiology")
	hub.Unregister(nurse.ID)

	hub.BroadcastNewRequest(&domain.Request{ID: "req-1", Department: "Cardiology"})
	assert.False(t, hub.Send(nurse.ID, []byte("{}")))
}
