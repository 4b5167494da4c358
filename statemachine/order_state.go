package statemachine

import (
	"errors"

	"hotel-guest-services/models"
)

// Actors that may drive an order status change.
const (
	ActorStaff = "staff"
	ActorGuest = "guest"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Staff advance the order through its lifecycle
	{From: models.OrderPending, To: models.OrderAccepted, Actor: ActorStaff},
	{From: models.OrderAccepted, To: models.OrderInProgress, Actor: ActorStaff},
	{From: models.OrderInProgress, To: models.OrderCompleted, Actor: ActorStaff},
	// Staff may cancel any active order
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorStaff},
	{From: models.OrderAccepted, To: models.OrderCancelled, Actor: ActorStaff},
	{From: models.OrderInProgress, To: models.OrderCancelled, Actor: ActorStaff},
	// Guests may cancel only while the order is still PENDING
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorGuest},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
