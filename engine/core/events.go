package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload any
}

type EventType uint16

const (
	EvtUnitProduced EventType = iota
	EvtUnitDied
	EvtUnitAttacked
	EvtNodeDepleted
	EvtResourceDeposited
	EvtBuildingPlaced
	EvtBuildingConstructed
	EvtBuildingDestroyed
	EvtGameEnded
	evtMax
)

var eventNames = [evtMax]string{
	EvtUnitProduced:        "unit-produced",
	EvtUnitDied:            "unit-died",
	EvtUnitAttacked:        "unit-attacked",
	EvtNodeDepleted:        "resource-node-depleted",
	EvtResourceDeposited:   "resource-deposited",
	EvtBuildingPlaced:      "building-placed",
	EvtBuildingConstructed: "building-constructed",
	EvtBuildingDestroyed:   "building-destroyed",
	EvtGameEnded:           "game-ended",
}

func (t EventType) String() string {
	if t < evtMax {
		return eventNames[t]
	}
	return "unknown"
}

// EventBus dispatches events to listeners. Events are queued during a tick
// and delivered in emission order by Dispatch.
type EventBus struct {
	listeners map[EventType][]EventHandler
	all       []EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// OnAny registers a handler that receives every event.
func (eb *EventBus) OnAny(h EventHandler) {
	eb.all = append(eb.all, h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events.
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}

// Dispatch processes all queued events. Handlers may emit; those events
// are delivered in the same call after the current batch.
func (eb *EventBus) Dispatch() {
	for len(eb.queue) > 0 {
		batch := eb.queue
		eb.queue = nil
		for _, e := range batch {
			for _, h := range eb.listeners[e.Type] {
				h(e)
			}
			for _, h := range eb.all {
				h(e)
			}
		}
	}
}
