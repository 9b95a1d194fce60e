// Package workflow is the single entry point for part status changes.
// Every status mutation in the registry goes through Apply, which
// validates legality against the five-state machine and stamps the
// lifecycle timestamp belonging to the transition.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

// Event names one edge of the repair workflow.
type Event string

const (
	EventStartRepair    Event = "start_repair"
	EventCompleteRepair Event = "complete_repair"
	EventScrap          Event = "scrap"
	EventShip           Event = "ship"
)

var (
	ErrIllegalTransition = errors.New(constants.MsgIllegalTransition)
	ErrUnknownEvent      = errors.New("unknown workflow event")
)

// transitions maps current status -> event -> next status.
var transitions = map[constants.PartStatus]map[Event]constants.PartStatus{
	constants.StatusUnrepaired: {
		EventStartRepair: constants.StatusInRepair,
		EventScrap:       constants.StatusScrap,
	},
	constants.StatusInRepair: {
		EventCompleteRepair: constants.StatusRepaired,
		EventScrap:          constants.StatusScrap,
	},
	constants.StatusRepaired: {
		EventShip: constants.StatusShipped,
	},
}

// Next returns the status reached by applying ev to from.
func Next(from constants.PartStatus, ev Event) (constants.PartStatus, error) {
	edges, ok := transitions[from]
	if !ok {
		return "", fmt.Errorf("%w: %s is terminal", ErrIllegalTransition, from)
	}
	to, ok := edges[ev]
	if !ok {
		return "", fmt.Errorf("%w: %s from %s", ErrIllegalTransition, ev, from)
	}
	return to, nil
}

// EventFor derives the event for an observed from -> to pair. Used by
// bulk status updates, where the caller supplies the target status.
func EventFor(from, to constants.PartStatus) (Event, error) {
	for ev, next := range transitions[from] {
		if next == to {
			return ev, nil
		}
	}
	return "", fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// Apply validates the event against the part's current status and, on
// success, advances the status and stamps the corresponding lifecycle
// timestamp. Each timestamp is set exactly once: a re-entry into a
// status a part has already passed through cannot happen because scrap
// and shipped are terminal and the graph is acyclic.
func Apply(p *entities.Part, ev Event, now time.Time) error {
	to, err := Next(p.Status, ev)
	if err != nil {
		return err
	}

	switch ev {
	case EventStartRepair:
		if p.AssignedTechnician == "" {
			return errors.New(constants.MsgMissingTechnician)
		}
		if p.RepairStarted == nil {
			t := now
			p.RepairStarted = &t
		}
	case EventCompleteRepair:
		if p.RepairCompleted == nil {
			t := now
			p.RepairCompleted = &t
		}
	case EventScrap:
		if p.ScrappedDate == nil {
			t := now
			p.ScrappedDate = &t
		}
	case EventShip:
		if p.ShippedDate == nil {
			t := now
			p.ShippedDate = &t
		}
	default:
		return ErrUnknownEvent
	}

	p.Status = to
	p.StatusChangedAt = now
	p.LastUpdated = now
	return nil
}
