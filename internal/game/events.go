package game

// EventKind identifies a domain notification emitted by the combat core.
type EventKind string

const (
	EventHandGenerated        EventKind = "hand_generated"
	EventHandStateChanged     EventKind = "hand_state_changed"
	EventCardPlayed           EventKind = "card_played"
	EventDamageComputed       EventKind = "damage_computed"
	EventCardPlayResult       EventKind = "card_play_result"
	EventDamagePreview        EventKind = "damage_preview_calculated"
	EventDamagePreviewCleared EventKind = "damage_preview_cleared"
	EventAttachmentSelected   EventKind = "attachment_selected"
	EventAttachmentRemoved    EventKind = "attachment_removed"
	EventAttachmentEnhanced   EventKind = "attachment_enhanced"
	EventOptionsPresented     EventKind = "options_presented"
	EventBattleFinished       EventKind = "battle_finished"
)

// Event is one outbound notification. Delivery is fire-and-forget: observers
// must not mutate combat state from a notification.
type Event struct {
	Kind       EventKind   `json:"kind"`
	BattleCode string      `json:"battle_code"`
	Payload    interface{} `json:"payload,omitempty"`
}

// Observer receives events synchronously, in publish order.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

// Publisher fans events out to an explicit observer list. Observers are
// called in subscription order after all mutations of the emitting
// operation completed.
type Publisher struct {
	observers []Observer
}

func NewPublisher() *Publisher { return &Publisher{} }

func (p *Publisher) Subscribe(o Observer) {
	if o != nil {
		p.observers = append(p.observers, o)
	}
}

// Publish delivers the event to every observer in order. A nil publisher is
// a no-op so components can run without any observers wired.
func (p *Publisher) Publish(e Event) {
	if p == nil {
		return
	}
	for _, o := range p.observers {
		o.Notify(e)
	}
}
