package game

import (
	"sync"
	"time"

	"github.com/lox/holdem-engine/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypePhaseChange  EventType = "phase_change"
	EventTypePlayerAction EventType = "player_action"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// PlayerActionEvent is published when a seat's action is accepted
type PlayerActionEvent struct {
	HandNumber int
	Seat       int
	Player     string
	Action     Action
	Amount     int // chips committed by the action
	Phase      Phase
	PotAfter   int
	timestamp  time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(hand int, player *Player, action Action, amount int, phase Phase, potAfter int) PlayerActionEvent {
	return PlayerActionEvent{
		HandNumber: hand,
		Seat:       player.ID,
		Player:     player.Name,
		Action:     action,
		Amount:     amount,
		Phase:      phase,
		PotAfter:   potAfter,
		timestamp:  time.Now(),
	}
}

// PhaseChangeEvent is published when the hand moves to a new phase
type PhaseChangeEvent struct {
	HandNumber int
	Phase      Phase
	Community  []deck.Card
	Pot        int
	timestamp  time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// NewPhaseChangeEvent creates a new phase change event
func NewPhaseChangeEvent(hand int, phase Phase, community []deck.Card, pot int) PhaseChangeEvent {
	cards := make([]deck.Card, len(community))
	copy(cards, community)
	return PhaseChangeEvent{
		HandNumber: hand,
		Phase:      phase,
		Community:  cards,
		Pot:        pot,
		timestamp:  time.Now(),
	}
}

// HandStartEvent is published once blinds are posted and cards dealt
type HandStartEvent struct {
	HandNumber int
	Players    []string
	Seats      []int // seat ids, parallel to Players
	SmallBlind int
	BigBlind   int
	InitialPot int
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// NewHandStartEvent creates a new hand start event
func NewHandStartEvent(hand int, players []*Player, smallBlind, bigBlind, initialPot int) HandStartEvent {
	names := make([]string, len(players))
	seats := make([]int, len(players))
	for i, p := range players {
		names[i] = p.Name
		seats[i] = p.ID
	}
	return HandStartEvent{
		HandNumber: hand,
		Players:    names,
		Seats:      seats,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		InitialPot: initialPot,
		timestamp:  time.Now(),
	}
}

// HandEndEvent is published when the pot has been awarded
type HandEndEvent struct {
	HandNumber  int
	WinnerSeat  int
	Winner      string
	Pot         int
	Showdown    bool // false when everyone else folded
	Explanation string
	Board       []deck.Card
	timestamp   time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// NewHandEndEvent creates a new hand end event
func NewHandEndEvent(hand int, winner *Player, pot int, showdown bool, explanation string, board []deck.Card) HandEndEvent {
	cards := make([]deck.Card, len(board))
	copy(cards, board)
	return HandEndEvent{
		HandNumber:  hand,
		WinnerSeat:  winner.ID,
		Winner:      winner.Name,
		Pot:         pot,
		Showdown:    showdown,
		Explanation: explanation,
		Board:       cards,
		timestamp:   time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber. Funcs are not
// comparable, so a func subscriber cannot be unsubscribed.
type EventSubscriberFunc func(GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous on
// the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Subscribers must be comparable; a
// pointer type is the usual choice.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if isComparable(sub) && sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

func isComparable(s EventSubscriber) bool {
	_, isFunc := s.(EventSubscriberFunc)
	return !isFunc
}

type nopBus struct{}

func (nopBus) Subscribe(EventSubscriber)   {}
func (nopBus) Unsubscribe(EventSubscriber) {}
func (nopBus) Publish(GameEvent)           {}
