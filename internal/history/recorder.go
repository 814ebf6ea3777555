// Package history records finished hands and writes them out in the PHH
// hand history format.
package history

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// Recorder builds a HandHistory for every hand played at a table. It
// subscribes to the table's event bus; hands appear in Hands once they end.
type Recorder struct {
	table *game.Table
	name  string

	mu      sync.Mutex
	hands   []*HandHistory
	current *handState
}

// handState tracks the hand being recorded
type handState struct {
	hh        *HandHistory
	seats     []int       // seat ids in PHH order
	index     map[int]int // seat id to PHH player index
	roundBets []int       // chips put in on the current street
	board     int         // community cards already written
}

// NewRecorder creates a recorder for table and subscribes it. name labels
// the table in each record and prefixes the hand ids.
func NewRecorder(table *game.Table, name string) *Recorder {
	r := &Recorder{table: table, name: name}
	table.Events().Subscribe(r)
	return r
}

// Close stops recording
func (r *Recorder) Close() {
	r.table.Events().Unsubscribe(r)
}

// Hands returns the finished hands recorded so far
func (r *Recorder) Hands() []*HandHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.hands)
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.HandStartEvent:
		r.start(e)
	case game.PlayerActionEvent:
		if r.current != nil {
			r.current.action(e)
		}
	case game.PhaseChangeEvent:
		if r.current != nil {
			r.current.deal(e.Community)
		}
	case game.HandEndEvent:
		if r.current != nil {
			r.finish(e)
		}
	}
}

// start captures stacks and hole cards. Blinds are already posted when the
// hand starts, so a seat's stack was its chips plus its round bet.
func (r *Recorder) start(e game.HandStartEvent) {
	players := r.table.Players()
	n := len(e.Seats)
	at := e.Timestamp().UTC()

	hh := &HandHistory{
		Variant:           NoLimitHoldem,
		Table:             r.name,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            e.BigBlind,
		StartingStacks:    make([]int, n),
		Players:           slices.Clone(e.Players),
		HandID:            fmt.Sprintf("%s-%05d", r.name, e.HandNumber),
		Time:              at.Format("15:04:05"),
		TimeZone:          "UTC",
		Day:               at.Day(),
		Month:             int(at.Month()),
		Year:              at.Year(),
		Timestamp:         at,
	}
	st := &handState{
		hh:        hh,
		seats:     slices.Clone(e.Seats),
		index:     make(map[int]int, n),
		roundBets: make([]int, n),
	}

	for i, id := range e.Seats {
		p := players[id]
		st.index[id] = i
		hh.Seats[i] = i + 1
		hh.BlindsOrStraddles[i] = p.RoundBet
		hh.StartingStacks[i] = p.Chips + p.RoundBet
		st.roundBets[i] = p.RoundBet
		hh.Actions = append(hh.Actions, fmt.Sprintf("d dh p%d %s", i+1, cardString(p.HoleCards)))
	}
	r.current = st
}

func (st *handState) action(e game.PlayerActionEvent) {
	i, ok := st.index[e.Seat]
	if !ok {
		return
	}
	st.roundBets[i] += e.Amount

	player := fmt.Sprintf("p%d", i+1)
	switch e.Action {
	case game.Fold:
		st.hh.Actions = append(st.hh.Actions, player+" f")
	case game.Bet, game.Raise:
		st.hh.Actions = append(st.hh.Actions, fmt.Sprintf("%s cbr %d", player, st.roundBets[i]))
	default:
		st.hh.Actions = append(st.hh.Actions, player+" cc")
	}
}

// deal writes the community cards that were not written yet and starts a
// new betting street
func (st *handState) deal(community []deck.Card) {
	if len(community) <= st.board {
		return
	}
	st.hh.Actions = append(st.hh.Actions, "d db "+cardString(community[st.board:]))
	st.board = len(community)
	clear(st.roundBets)
}

func (r *Recorder) finish(e game.HandEndEvent) {
	st := r.current
	r.current = nil
	players := r.table.Players()
	n := len(st.seats)

	if e.Showdown {
		for i, id := range st.seats {
			if p := players[id]; !p.Folded {
				st.hh.Actions = append(st.hh.Actions, fmt.Sprintf("p%d sm %s", i+1, cardString(p.HoleCards)))
			}
		}
	}

	st.hh.FinishingStacks = make([]int, n)
	st.hh.Winnings = make([]int, n)
	for i, id := range st.seats {
		st.hh.FinishingStacks[i] = players[id].Chips
	}
	if i, ok := st.index[e.WinnerSeat]; ok {
		st.hh.Winnings[i] = e.Pot
	}
	r.hands = append(r.hands, st.hh)
}

func cardString(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Short())
	}
	return b.String()
}
