package statemachine

import (
	"strings"
	"testing"

	"hotel-guest-services/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		wantErr bool
	}{
		{"staff accepts pending", models.OrderPending, models.OrderAccepted, ActorStaff, false},
		{"staff starts accepted", models.OrderAccepted, models.OrderInProgress, ActorStaff, false},
		{"staff completes in-progress", models.OrderInProgress, models.OrderCompleted, ActorStaff, false},
		{"staff cancels pending", models.OrderPending, models.OrderCancelled, ActorStaff, false},
		{"staff cancels accepted", models.OrderAccepted, models.OrderCancelled, ActorStaff, false},
		{"staff cancels in-progress", models.OrderInProgress, models.OrderCancelled, ActorStaff, false},
		{"guest cancels pending", models.OrderPending, models.OrderCancelled, ActorGuest, false},

		{"guest cannot accept", models.OrderPending, models.OrderAccepted, ActorGuest, true},
		{"guest cannot cancel accepted", models.OrderAccepted, models.OrderCancelled, ActorGuest, true},
		{"staff cannot skip to completed", models.OrderPending, models.OrderCompleted, ActorStaff, true},
		{"staff cannot skip to in-progress", models.OrderPending, models.OrderInProgress, ActorStaff, true},
		{"cannot move backwards", models.OrderAccepted, models.OrderPending, ActorStaff, true},
		{"completed is terminal", models.OrderCompleted, models.OrderCancelled, ActorStaff, true},
		{"cancelled is terminal", models.OrderCancelled, models.OrderPending, ActorStaff, true},
		{"unknown actor rejected", models.OrderPending, models.OrderAccepted, "robot", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if (err != nil) != tt.wantErr {
				t.Errorf("CanTransition(%s, %s, %s) error = %v, wantErr %v", tt.from, tt.to, tt.actor, err, tt.wantErr)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		want []models.OrderStatus
	}{
		{models.OrderPending, []models.OrderStatus{models.OrderAccepted, models.OrderCancelled}},
		{models.OrderAccepted, []models.OrderStatus{models.OrderInProgress, models.OrderCancelled}},
		{models.OrderInProgress, []models.OrderStatus{models.OrderCompleted, models.OrderCancelled}},
		{models.OrderCompleted, nil},
		{models.OrderCancelled, nil},
	}

	for _, tt := range tests {
		got := ValidTransitionsFrom(tt.from)
		if len(got) != len(tt.want) {
			t.Errorf("ValidTransitionsFrom(%s) = %v, want %v", tt.from, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ValidTransitionsFrom(%s)[%d] = %s, want %s", tt.from, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTransitionErrorListsAlternatives(t *testing.T) {
	err := CanTransition(models.OrderPending, models.OrderCompleted, ActorStaff)
	if err == nil {
		t.Fatal("expected error for PENDING -> COMPLETED")
	}
	if !strings.Contains(err.Error(), string(models.OrderAccepted)) {
		t.Errorf("error should list valid next states, got: %v", err)
	}

	err = CanTransition(models.OrderCompleted, models.OrderPending, ActorStaff)
	if err == nil {
		t.Fatal("expected error for COMPLETED -> PENDING")
	}
	if !strings.Contains(err.Error(), "terminal") {
		t.Errorf("terminal-state error should say so, got: %v", err)
	}
}
