package game

import "slices"

// TurnManager tracks whose turn it is among the seats still in the hand.
// The current position is always an index into the live list; removing a
// seat recomputes it rather than trusting an old index.
type TurnManager struct {
	players []*Player
	current int
}

// NewTurnManager starts with the seat after the big blind to act
func NewTurnManager(players []*Player) *TurnManager {
	tm := &TurnManager{players: slices.Clone(players)}
	tm.current = tm.FindBigBlind()
	return tm
}

// FindBigBlind returns the index after the big blind seat, wrapping, or 0
// when no live seat holds the big blind.
func (tm *TurnManager) FindBigBlind() int {
	for i, p := range tm.players {
		if p.Role == BigBlind {
			return (i + 1) % len(tm.players)
		}
	}
	return 0
}

// ResetToBigBlind puts the turn on the seat after the big blind
func (tm *TurnManager) ResetToBigBlind() {
	tm.current = tm.FindBigBlind()
}

// Current returns the seat whose turn it is, or nil with no seats
func (tm *TurnManager) Current() *Player {
	if len(tm.players) == 0 {
		return nil
	}
	return tm.players[tm.current]
}

// CurrentIndex returns the position of the current seat in the live list
func (tm *TurnManager) CurrentIndex() int {
	return tm.current
}

// NextTurn advances to the next live seat and returns it
func (tm *TurnManager) NextTurn() *Player {
	if len(tm.players) == 0 {
		return nil
	}
	tm.current = (tm.current + 1) % len(tm.players)
	return tm.players[tm.current]
}

// Remove drops a seat from the rotation. When the current seat is removed
// the following seat moves into its position and becomes current.
func (tm *TurnManager) Remove(p *Player) {
	idx := slices.IndexFunc(tm.players, func(o *Player) bool { return o.ID == p.ID })
	if idx < 0 {
		return
	}
	tm.players = slices.Delete(tm.players, idx, idx+1)
	if len(tm.players) == 0 {
		tm.current = 0
		return
	}
	if idx < tm.current {
		tm.current--
	}
	tm.current %= len(tm.players)
}

// Players returns the live seats in seat order
func (tm *TurnManager) Players() []*Player {
	return slices.Clone(tm.players)
}

// Len returns the number of live seats
func (tm *TurnManager) Len() int {
	return len(tm.players)
}

// AllActed reports whether every live seat has acted this round
func (tm *TurnManager) AllActed() bool {
	for _, p := range tm.players {
		if !p.HasActed {
			return false
		}
	}
	return true
}
