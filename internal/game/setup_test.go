package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RetiredDemiurge/love-letter/cards"
	"github.com/RetiredDemiurge/love-letter/internal/randutil"
)

func TestDefaultTargetTokens(t *testing.T) {
	cases := []struct {
		players int
		tokens  int
	}{
		{2, 7},
		{3, 5},
		{4, 4},
	}
	for _, tc := range cases {
		tokens, err := DefaultTargetTokens(tc.players)
		require.NoError(t, err)
		assert.Equal(t, tc.tokens, tokens)
	}

	for _, n := range []int{0, 1, 5} {
		_, err := DefaultTargetTokens(n)
		require.Error(t, err, "player count %d", n)
		assert.True(t, IsRulesError(err))
	}
}

func TestNewGameAssignsSequentialIDs(t *testing.T) {
	g, err := NewGame([]string{"Ada", "Basil", "Cleo"})
	require.NoError(t, err)

	assert.Equal(t, 5, g.TargetTokens)
	require.Len(t, g.Players, 3)
	for i, p := range g.Players {
		assert.Equal(t, i, p.ID)
	}
	assert.Equal(t, "Basil", g.Players[1].Name)
}

func TestNewGameUnsupportedCount(t *testing.T) {
	_, err := NewGame([]string{"Solo"})
	require.Error(t, err)
}

func TestNewGameTargetTokensOverride(t *testing.T) {
	g, err := NewGame([]string{"A", "B"}, WithTargetTokens(3))
	require.NoError(t, err)
	assert.Equal(t, 3, g.TargetTokens)
}

func TestBuildDeckComposition(t *testing.T) {
	deck := BuildDeck(randutil.New(1))
	require.Len(t, deck, cards.DeckSize)

	counts := map[cards.Type]int{}
	for _, c := range deck {
		counts[c]++
	}
	for _, typ := range cards.All() {
		assert.Equal(t, cards.Count(typ), counts[typ], "%s count", typ)
	}
}

func TestBuildDeckDeterministic(t *testing.T) {
	assert.Equal(t, BuildDeck(randutil.New(42)), BuildDeck(randutil.New(42)))
}

func TestTwoPlayerSetup(t *testing.T) {
	g, err := NewGame([]string{"A", "B"})
	require.NoError(t, err)

	round, err := g.SetupRound(randutil.New(0))
	require.NoError(t, err)

	assert.Len(t, round.FaceUp, 3)
	assert.Len(t, round.Burned, 1)
	assert.Len(t, round.Deck, 16-3-1-2)
	for _, p := range round.Players {
		assert.Len(t, p.Hand, 1)
	}
	assert.Equal(t, 1, g.RoundNumber)
	assert.Same(t, round, g.Round)

	require.GreaterOrEqual(t, len(round.Events), 2)
	start, ok := round.Events[0].(RoundStartEvent)
	require.True(t, ok)
	assert.Equal(t, 1, start.Round)
	assert.Equal(t, KindFaceUp, round.Events[1].Kind())
}

func TestThreeAndFourPlayerSetupNoFaceUp(t *testing.T) {
	for _, names := range [][]string{{"A", "B", "C"}, {"A", "B", "C", "D"}} {
		g, err := NewGame(names)
		require.NoError(t, err)

		round, err := g.SetupRound(randutil.New(7))
		require.NoError(t, err)

		assert.Empty(t, round.FaceUp)
		assert.Len(t, round.Burned, 1)
		assert.Len(t, round.Deck, 16-1-len(names))
		require.Len(t, round.Events, 1)
		assert.Equal(t, KindRoundStart, round.Events[0].Kind())
	}
}

func TestSetupRoundResetsPlayers(t *testing.T) {
	g, err := NewGame([]string{"A", "B"})
	require.NoError(t, err)

	g.Players[0].Tokens = 2
	g.Players[0].Eliminated = true
	g.Players[0].Protected = true
	g.Players[0].Discard = []cards.Type{cards.Guard}

	round, err := g.SetupRound(randutil.New(3))
	require.NoError(t, err)

	p := round.Players[0]
	assert.Equal(t, 2, p.Tokens, "tokens persist across rounds")
	assert.False(t, p.Eliminated)
	assert.False(t, p.Protected)
	assert.Empty(t, p.Discard)
	assert.Len(t, p.Hand, 1)
}

func TestSetupRoundHonorsNextStartPlayer(t *testing.T) {
	g, err := NewGame([]string{"A", "B", "C"})
	require.NoError(t, err)
	next := 2
	g.NextStartPlayerID = &next

	round, err := g.SetupRound(randutil.New(0))
	require.NoError(t, err)

	assert.Equal(t, 2, round.CurrentPlayer().ID)
}

func TestSetupRoundWithOverride(t *testing.T) {
	g, err := NewGame([]string{"A", "B", "C"})
	require.NoError(t, err)

	round, err := g.SetupRound(randutil.New(0), WithSetup(SetupConfig{BurnFaceDown: 2, BurnFaceUp: 1}))
	require.NoError(t, err)

	assert.Len(t, round.Burned, 2)
	assert.Len(t, round.FaceUp, 1)
	assert.Len(t, round.Deck, 16-2-1-3)
}

func TestSetupRoundDeterministic(t *testing.T) {
	run := func() (*Game, *Round) {
		g, err := NewGame([]string{"A", "B", "C"})
		if err != nil {
			t.Fatal(err)
		}
		round, err := g.SetupRound(randutil.New(99))
		if err != nil {
			t.Fatal(err)
		}
		return g, round
	}

	_, r1 := run()
	_, r2 := run()

	assert.Equal(t, r1.Deck, r2.Deck)
	assert.Equal(t, r1.Burned, r2.Burned)
	assert.Equal(t, r1.CurrentPlayerIdx, r2.CurrentPlayerIdx)
	for i := range r1.Players {
		assert.Equal(t, r1.Players[i].Hand, r2.Players[i].Hand)
	}
}
