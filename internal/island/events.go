package island

import "github.com/vovakirdan/dino-island/internal/core"

// EventKind identifies something that happened during a step.
type EventKind uint8

const (
	EventPlayerHit EventKind = iota
	EventHazardBurn
	EventItemPicked
	EventPotionUsed
	EventRepellentUsed
	EventRepellentExpired
	EventCreatureDied
	EventPlayerDied
	EventNightfall
	EventDaybreak
	EventEscaped
	EventLavaWave
	EventBoatArrived
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerHit:
		return "player_hit"
	case EventHazardBurn:
		return "hazard_burn"
	case EventItemPicked:
		return "item_picked"
	case EventPotionUsed:
		return "potion_used"
	case EventRepellentUsed:
		return "repellent_used"
	case EventRepellentExpired:
		return "repellent_expired"
	case EventCreatureDied:
		return "creature_died"
	case EventPlayerDied:
		return "player_died"
	case EventNightfall:
		return "nightfall"
	case EventDaybreak:
		return "daybreak"
	case EventEscaped:
		return "escaped"
	case EventLavaWave:
		return "lava_wave"
	case EventBoatArrived:
		return "boat_arrived"
	default:
		return "unknown"
	}
}

// Event is emitted by a step for presentation (particles, sounds, HUD flashes).
// Events never feed back into the simulation.
type Event struct {
	Kind   EventKind
	Entity EntityID
	Pos    core.Vec2
	Amount float64
	Item   ItemKind
}

// Status is the session outcome.
type Status uint8

const (
	StatusRunning Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// StepResult reports what one step did. Events is only valid until the next Step.
type StepResult struct {
	Tick   uint64
	Status Status
	Events []Event
}
