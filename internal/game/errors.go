package game

import "errors"

var (
	// ErrInvalidAction is returned for an action outside check, call, bet,
	// raise and fold. The game state is unchanged.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInsufficientChips is returned when a seat cannot cover the chips an
	// action requires. Nothing is committed and the turn does not advance.
	ErrInsufficientChips = errors.New("insufficient chips")
	// ErrInvalidAmount is returned for a bet or raise of zero or less, or a
	// raise that is not above the current table bet.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrOutOfTurn is returned when a seat acts while it is not its turn
	ErrOutOfTurn = errors.New("not this seat's turn")
	// ErrHandComplete is returned for actions after the showdown
	ErrHandComplete = errors.New("hand is complete")
	// ErrUnknownSeat is returned for a seat id that is not at the table
	ErrUnknownSeat = errors.New("unknown seat")
	// ErrNotBot is returned when a bot decision is requested for a human seat
	ErrNotBot = errors.New("seat is not a bot")
	// ErrHandInProgress is returned when a new hand is dealt before the
	// current one reaches the showdown
	ErrHandInProgress = errors.New("hand still in progress")
	// ErrNotEnoughPlayers is returned when fewer than two seats can play
	ErrNotEnoughPlayers = errors.New("at least 2 players with chips required")
)
