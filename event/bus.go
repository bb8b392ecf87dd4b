package event

// Handler receives events from the Bus
type Handler func(GameEvent)

// Subscription identifies a registered handler for Unsubscribe
type Subscription struct {
	Type EventType
	id   uint64
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous observer registry
// Emit runs handlers in subscription order on the caller's goroutine
// Not safe for concurrent use: owned by the game loop
type Bus struct {
	handlers [eventTypeCount][]subscriber
	nextID   uint64
}

// NewBus creates an empty Bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for events of type et
func (b *Bus) Subscribe(et EventType, handler Handler) Subscription {
	if et <= EventTick || et >= eventTypeCount || handler == nil {
		return Subscription{}
	}
	b.nextID++
	b.handlers[et] = append(b.handlers[et], subscriber{id: b.nextID, handler: handler})
	return Subscription{Type: et, id: b.nextID}
}

// Unsubscribe removes a handler; unknown subscriptions are ignored
func (b *Bus) Unsubscribe(sub Subscription) {
	if sub.id == 0 {
		return
	}
	list := b.handlers[sub.Type]
	for i, s := range list {
		if s.id == sub.id {
			// Copy so an Emit in progress keeps iterating its own snapshot
			next := make([]subscriber, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			b.handlers[sub.Type] = next
			return
		}
	}
}

// Emit delivers ev to all handlers subscribed to its type
func (b *Bus) Emit(ev GameEvent) {
	if ev.Type <= EventTick || ev.Type >= eventTypeCount {
		return
	}
	for _, s := range b.handlers[ev.Type] {
		s.handler(ev)
	}
}

// Count returns the number of handlers for et
func (b *Bus) Count(et EventType) int {
	if et <= EventTick || et >= eventTypeCount {
		return 0
	}
	return len(b.handlers[et])
}
