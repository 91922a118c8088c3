package platformer

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventJump EventKind = iota
	EventSpring
	EventCoin
	EventStomp
	EventDeath
	EventLevelComplete
	EventRespawn
	EventLevelReset
	EventRunWrapped
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventSpring:
		return "spring"
	case EventCoin:
		return "coin"
	case EventStomp:
		return "stomp"
	case EventDeath:
		return "death"
	case EventLevelComplete:
		return "level_complete"
	case EventRespawn:
		return "respawn"
	case EventLevelReset:
		return "level_reset"
	case EventRunWrapped:
		return "run_wrapped"
	default:
		return "unknown"
	}
}

// Event is a notification produced by the session.
type Event struct {
	Kind  EventKind
	Level int // 1-based level number
	X, Y  float64

	// Final holds the counters of a finished campaign on EventRunWrapped.
	Final *Stats
}

// Listener receives fire-and-forget notifications from a session.
// OnDeath is followed by a pause until AfterQuiz is called.
type Listener interface {
	OnDeath(level int)
	OnCoinCollected()
	OnEnemyDefeated()
	OnJump()
	OnLevelComplete()
}

// NopListener ignores every notification. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) OnDeath(int)      {}
func (NopListener) OnCoinCollected() {}
func (NopListener) OnEnemyDefeated() {}
func (NopListener) OnJump()          {}
func (NopListener) OnLevelComplete() {}

// dispatch forwards an event to the listener method it maps to.
func dispatch(l Listener, e Event) {
	if l == nil {
		return
	}
	switch e.Kind {
	case EventDeath:
		l.OnDeath(e.Level)
	case EventCoin:
		l.OnCoinCollected()
	case EventStomp:
		l.OnEnemyDefeated()
	case EventJump, EventSpring:
		l.OnJump()
	case EventLevelComplete:
		l.OnLevelComplete()
	}
}
