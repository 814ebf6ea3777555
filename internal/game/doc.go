// Package game implements a Texas Hold'em hand as a state machine.
//
// The main type is Game, which holds one hand: the deck, the seats still in
// the hand, the community cards, the pot and the phase. Actions are applied
// one at a time with ExecuteTurn; when every remaining seat has acted the
// game moves to the next phase, and entering the showdown awards the pot.
//
// # Basic Usage
//
//	players := []*game.Player{
//	    game.NewPlayer(0, "You", 1000),
//	    game.NewBot(1, "Bot", 1000, game.Aggressive, rng),
//	}
//	g, err := game.New(rng, players, 0, 5, 10)
//	msg, err := g.ExecuteTurn(0, game.Call, 0)
//	msgs, err := g.PlayBots() // let bots act until a human is up
//
// Table wraps Game for a session of several hands, keeping chip stacks and
// moving the button between hands.
//
// # Simplifications
//
// Hands are compared by category only, so two flushes tie. Ties are not
// split: the pot goes to the first tied seat in seat order. There are no side
// pots, and a seat that cannot cover a bet must fold.
//
// # Deterministic Testing
//
// Every source of randomness comes from the *rand.Rand passed to New, so a
// fixed seed replays the same hand. WithDeck stacks the deck directly:
//
//	d := deck.FromCards(cards) // last card is dealt first
//	g, err := game.New(rng, players, 0, 5, 10, game.WithDeck(d))
package game
