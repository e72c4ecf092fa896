package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/muesli/termenv"

	"github.com/RetiredDemiurge/love-letter/cards"
	"github.com/RetiredDemiurge/love-letter/cmd/loveletter/shared"
	"github.com/RetiredDemiurge/love-letter/internal/game"
	"github.com/RetiredDemiurge/love-letter/internal/randutil"
)

// SimulateCmd plays random self-play games and reports statistics. Useful
// for sanity checking rule changes and for seeding regression hunts.
type SimulateCmd struct {
	Games   int   `kong:"default='1000',help='Number of games to simulate'"`
	Players int   `kong:"default='2',help='Players per game (2-4)'"`
	Seed    int64 `kong:"default='0',help='RNG seed (0 for random)'"`
	Debug   bool  `kong:"help='Enable debug logging'"`
}

// simStats aggregates results across simulated games.
type simStats struct {
	Games       int
	Rounds      int
	SeatWins    []int
	SharedWins  int
	LastStand   int
	DeckEmpty   int
	MaxRounds   int
	TotalTokens int
}

func (c *SimulateCmd) Run() error {
	if c.Players < 2 || c.Players > 4 {
		return fmt.Errorf("players must be 2-4, got %d", c.Players)
	}

	logger := shared.SetupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting simulation", "games", c.Games, "players", c.Players, "seed", seed)

	rng := randutil.New(seed)
	stats := &simStats{SeatWins: make([]int, c.Players)}

	start := time.Now()
	for i := 0; i < c.Games; i++ {
		if err := c.playGame(rng, stats); err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	printReport(stats, c.Players, seed, elapsed)
	return nil
}

// playGame drives one full game with uniformly random legal actions.
func (c *SimulateCmd) playGame(rng *rand.Rand, stats *simStats) error {
	names := make([]string, c.Players)
	for i := range names {
		names[i] = fmt.Sprintf("Bot-%d", i+1)
	}
	g, err := game.NewGame(names)
	if err != nil {
		return err
	}

	for !g.Over() {
		round, err := g.SetupRound(rng)
		if err != nil {
			return err
		}
		stats.Rounds++

		for !round.RoundOver {
			current := round.CurrentPlayer()
			canPlay, err := round.StartTurn(current.ID, rng)
			if err != nil {
				return err
			}
			if !canPlay {
				g.CheckRoundEnd(round, rng)
				break
			}

			action := randomAction(round, current, rng)
			if _, err := round.ApplyAction(action, rng); err != nil {
				return err
			}
			g.CheckRoundEnd(round, rng)
			if !round.RoundOver {
				round.AdvanceTurn()
			}
		}

		if len(round.ActivePlayers()) <= 1 {
			stats.LastStand++
		} else {
			stats.DeckEmpty++
		}
	}

	stats.Games++
	if g.RoundNumber > stats.MaxRounds {
		stats.MaxRounds = g.RoundNumber
	}

	var winners []int
	for i, p := range g.Players {
		stats.TotalTokens += p.Tokens
		if p.Tokens >= g.TargetTokens {
			winners = append(winners, i)
		}
	}
	if len(winners) == 1 {
		stats.SeatWins[winners[0]]++
	} else {
		stats.SharedWins++
	}
	return nil
}

// randomAction picks a uniformly random legal action for the current player.
func randomAction(round *game.Round, player *game.Player, rng *rand.Rand) game.Action {
	legal := game.LegalPlayCards(player.Hand)
	card := legal[rng.IntN(len(legal))]
	action := game.Action{PlayerID: player.ID, Card: card}

	switch card {
	case cards.Guard, cards.Priest, cards.Baron, cards.Prince, cards.King:
		targets, _ := round.ValidTargets(player.ID, card)
		if len(targets) > 0 {
			id := targets[rng.IntN(len(targets))].ID
			action.TargetID = &id
		}
	}

	if card == cards.Guard && action.TargetID != nil {
		options := make([]cards.Type, 0, 7)
		for _, c := range cards.All() {
			if c != cards.Guard {
				options = append(options, c)
			}
		}
		guess := options[rng.IntN(len(options))]
		action.Guess = &guess
	}
	return action
}

func printReport(stats *simStats, players int, seed int64, elapsed time.Duration) {
	out := termenv.NewOutput(os.Stdout)

	header := out.String(" Love Letter self-play report ").Bold().
		Foreground(out.Color("15")).Background(out.Color("5"))
	fmt.Fprintln(out, header)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Games:          %d (%d players, seed %d)\n", stats.Games, players, seed)
	fmt.Fprintf(out, "Elapsed:        %s (%.0f games/sec)\n", elapsed.Round(time.Millisecond),
		float64(stats.Games)/elapsed.Seconds())
	fmt.Fprintf(out, "Rounds:         %d total, %.1f per game, longest game %d\n",
		stats.Rounds, float64(stats.Rounds)/float64(stats.Games), stats.MaxRounds)
	fmt.Fprintln(out)

	roundEnds := out.String("Round endings:").Bold()
	fmt.Fprintln(out, roundEnds)
	fmt.Fprintf(out, "  last player standing: %d (%.1f%%)\n",
		stats.LastStand, percent(stats.LastStand, stats.Rounds))
	fmt.Fprintf(out, "  deck exhausted:       %d (%.1f%%)\n",
		stats.DeckEmpty, percent(stats.DeckEmpty, stats.Rounds))
	fmt.Fprintln(out)

	seatWins := out.String("Wins by seat:").Bold()
	fmt.Fprintln(out, seatWins)
	for i, wins := range stats.SeatWins {
		bar := out.String(fmt.Sprintf("  Bot-%d: %5d (%.1f%%)", i+1, wins, percent(wins, stats.Games)))
		fmt.Fprintln(out, bar.Foreground(out.Color("10")))
	}
	if stats.SharedWins > 0 {
		line := out.String(fmt.Sprintf("  shared: %4d (%.1f%%)", stats.SharedWins, percent(stats.SharedWins, stats.Games)))
		fmt.Fprintln(out, line.Foreground(out.Color("11")))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
