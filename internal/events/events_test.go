package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEventToJSON(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event Event
		want  map[string]any
	}{
		{
			name:  "group added omits user fields",
			event: Event{Type: GroupAdded, Group: "dorm", OccurredAt: at},
			want: map[string]any{
				"type":        "group.added",
				"group":       "dorm",
				"occurred_at": "2024-05-01T12:00:00Z",
			},
		},
		{
			name: "transaction added",
			event: Event{
				Type:          TransactionAdded,
				Group:         "dorm",
				User:          "bob",
				TransactionID: "abc",
				Amount:        12.5,
				OccurredAt:    at,
			},
			want: map[string]any{
				"type":           "transaction.added",
				"group":          "dorm",
				"user":           "bob",
				"transaction_id": "abc",
				"amount":         12.5,
				"occurred_at":    "2024-05-01T12:00:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.event.ToJSON()
			if err != nil {
				t.Fatalf("ToJSON failed: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("invalid JSON %s: %v", data, err)
			}
			if len(got) != len(tt.want) {
				t.Errorf("got fields %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()

	r.Publish(ctx, Event{Type: GroupAdded, Group: "dorm"})
	r.Publish(ctx, Event{Type: UserAdded, Group: "dorm", User: "alice"})

	got := r.Events()
	if len(got) != 2 || got[0].Type != GroupAdded || got[1].User != "alice" {
		t.Fatalf("unexpected events: %+v", got)
	}

	got[0].Group = "changed"
	if r.Events()[0].Group != "dorm" {
		t.Error("Events returned a shared slice")
	}
}
