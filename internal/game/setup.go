package game

import (
	rand "math/rand/v2"

	"github.com/RetiredDemiurge/love-letter/cards"
)

var defaultSetupByPlayers = map[int]SetupConfig{
	2: {BurnFaceDown: 1, BurnFaceUp: 3},
	3: {BurnFaceDown: 1, BurnFaceUp: 0},
	4: {BurnFaceDown: 1, BurnFaceUp: 0},
}

var targetTokensByPlayers = map[int]int{
	2: 7,
	3: 5,
	4: 4,
}

// DefaultTargetTokens returns the win threshold for the given player count.
func DefaultTargetTokens(numPlayers int) (int, error) {
	tokens, ok := targetTokensByPlayers[numPlayers]
	if !ok {
		return 0, rulesErrorf("Love Letter supports 2-4 players.")
	}
	return tokens, nil
}

// DefaultSetup returns the standard burn configuration for the given player
// count.
func DefaultSetup(numPlayers int) (SetupConfig, error) {
	cfg, ok := defaultSetupByPlayers[numPlayers]
	if !ok {
		return SetupConfig{}, rulesErrorf("Love Letter supports 2-4 players.")
	}
	return cfg, nil
}

// GameOption configures NewGame.
type GameOption func(*gameOptions)

type gameOptions struct {
	targetTokens *int
}

// WithTargetTokens overrides the player-count-specific win threshold.
func WithTargetTokens(tokens int) GameOption {
	return func(o *gameOptions) { o.targetTokens = &tokens }
}

// NewGame builds a game with sequential player ids 0..n-1 in input order.
// The win threshold comes from the player count unless overridden.
func NewGame(names []string, opts ...GameOption) (*Game, error) {
	var options gameOptions
	for _, opt := range opts {
		opt(&options)
	}

	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = NewPlayer(i, name)
	}

	tokens := 0
	if options.targetTokens != nil {
		tokens = *options.targetTokens
	} else {
		var err error
		tokens, err = DefaultTargetTokens(len(players))
		if err != nil {
			return nil, err
		}
	}

	return &Game{Players: players, TargetTokens: tokens}, nil
}

// BuildDeck materializes the 16-card multiset and shuffles it with the
// supplied random source.
func BuildDeck(rng *rand.Rand) []cards.Type {
	deck := make([]cards.Type, 0, cards.DeckSize)
	for _, t := range cards.All() {
		for i := 0; i < cards.Count(t); i++ {
			deck = append(deck, t)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// SetupOption configures SetupRound.
type SetupOption func(*setupOptions)

type setupOptions struct {
	setup *SetupConfig
}

// WithSetup overrides the default burn configuration, for variants and
// tests.
func WithSetup(cfg SetupConfig) SetupOption {
	return func(o *setupOptions) { o.setup = &cfg }
}

// SetupRound resets every player's per-round state, burns and deals from a
// freshly shuffled deck, picks the start player, and installs the new round
// on the game. It emits round_start and, when face-up cards were removed,
// face_up.
func (g *Game) SetupRound(rng *rand.Rand, opts ...SetupOption) (*Round, error) {
	var options setupOptions
	for _, opt := range opts {
		opt(&options)
	}

	cfg := SetupConfig{}
	if options.setup != nil {
		cfg = *options.setup
	} else {
		var err error
		cfg, err = DefaultSetup(len(g.Players))
		if err != nil {
			return nil, err
		}
	}

	for _, p := range g.Players {
		p.resetForRound()
	}

	deck := BuildDeck(rng)
	burned := make([]cards.Type, 0, cfg.BurnFaceDown)
	for i := 0; i < cfg.BurnFaceDown; i++ {
		burned = append(burned, deck[len(deck)-1])
		deck = deck[:len(deck)-1]
	}
	faceUp := make([]cards.Type, 0, cfg.BurnFaceUp)
	for i := 0; i < cfg.BurnFaceUp; i++ {
		faceUp = append(faceUp, deck[len(deck)-1])
		deck = deck[:len(deck)-1]
	}

	round := &Round{
		Players: g.Players,
		Deck:    deck,
		Burned:  burned,
		FaceUp:  faceUp,
	}
	for _, p := range g.Players {
		p.Hand = append(p.Hand, round.drawCard())
	}
	round.CurrentPlayerIdx = g.chooseStartIndex(rng)

	g.RoundNumber++
	g.Round = round
	round.emit(RoundStartEvent{
		Round:         g.RoundNumber,
		StartPlayerID: round.CurrentPlayer().ID,
	})
	if len(faceUp) > 0 {
		round.emit(FaceUpEvent{Cards: append([]cards.Type(nil), faceUp...)})
	}
	return round, nil
}

// chooseStartIndex honors NextStartPlayerID when set, otherwise picks a
// uniformly random seat. The override stays in place until overwritten.
func (g *Game) chooseStartIndex(rng *rand.Rand) int {
	if g.NextStartPlayerID == nil {
		return rng.IntN(len(g.Players))
	}
	for idx, p := range g.Players {
		if p.ID == *g.NextStartPlayerID {
			return idx
		}
	}
	return 0
}
