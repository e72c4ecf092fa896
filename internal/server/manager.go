package server

import (
	"context"
	rand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/RetiredDemiurge/love-letter/internal/game"
	"github.com/RetiredDemiurge/love-letter/internal/gameid"
	"github.com/RetiredDemiurge/love-letter/internal/randutil"
)

// Join codes avoid 0/O and 1/I lookalikes.
const joinCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTVWXYZ"
const joinCodeLength = 6

/// Manager owns the session registry: creation, join-code lookup, and idle
// session collection. The clock is injected so expiry is testable.
type Manager struct {
	logger      *log.Logger
	clock       quartz.Clock
	maxGames    int
	idleTimeout time.Duration

	mu       sync.Mutex
	rng      *rand.Rand
	sessions map[string]*Session
	byCode   map[string]*Session
}

// NewManager creates a manager. A nil seed means time-based seeding; tests
// pass a seed and a mock clock for full determinism.
func NewManager(logger *log.Logger, clock quartz.Clock, cfg SessionSettings, idleTimeout time.Duration) *Manager {
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	return &Manager{
		logger:      logger.WithPrefix("sessions"),
		clock:       clock,
		maxGames:    cfg.MaxGames,
		idleTimeout: idleTimeout,
		rng:         randutil.New(seed),
		sessions:    make(map[string]*Session),
		byCode:      make(map[string]*Session),
	}
}

// Create registers a new session with the host in seat 0 and returns it
// along with the host's seat.
func (m *Manager) Create(hostName string, seed *int64) (*Session, Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxGames {
		return nil, Seat{}, &game.RulesError{Reason: "Too many games in progress."}
	}

	gameRNG := randutil.New(m.rng.Int64())
	if seed != nil {
		gameRNG = randutil.New(*seed)
	}

	id := gameid.New()
	code := m.newJoinCode()
	session := newSession(id, code, hostName, gameRNG, m.clock.Now())
	m.sessions[id] = session
	m.byCode[code] = session

	m.logger.Info("Session created", "game", id, "code", code, "host", hostName)
	return session, session.seats[0], nil
}

// Join adds a player to the session with the given join code.
func (m *Manager) Join(joinCode, name string) (*Session, Seat, error) {
	m.mu.Lock()
	session, ok := m.byCode[strings.ToUpper(joinCode)]
	m.mu.Unlock()
	if !ok {
		return nil, Seat{}, &game.RulesError{Reason: "Unknown join code."}
	}

	seat, err := session.Join(name, m.clock.Now())
	if err != nil {
		return nil, Seat{}, err
	}
	m.logger.Info("Player joined", "game", session.ID, "player", name, "seat", seat.PlayerID)
	return session, seat, nil
}

// Get returns the session with the given game id.
func (m *Manager) Get(gameID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[gameID]
	if !ok {
		return nil, &game.RulesError{Reason: "Unknown game."}
	}
	return session, nil
}

// Now returns the manager's clock reading, for stamping session activity.
func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap drops sessions idle for longer than the timeout and returns how many
// were removed.
func (m *Manager) Reap() int {
	cutoff := m.clock.Now().Add(-m.idleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, session := range m.sessions {
		if session.IdleSince().Before(cutoff) {
			delete(m.sessions, id)
			delete(m.byCode, session.JoinCode)
			removed++
			m.logger.Info("Session expired", "game", id)
		}
	}
	return removed
}

// RunReaper collects idle sessions on an interval until ctx is done.
func (m *Manager) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := m.clock.TickerFunc(ctx, interval, func() error {
		m.Reap()
		return nil
	}, "session-reaper")
	_ = ticker.Wait()
}

// newJoinCode generates a join code not currently in use. Caller holds mu.
func (m *Manager) newJoinCode() string {
	for {
		code := make([]byte, joinCodeLength)
		for i := range code {
			code[i] = joinCodeAlphabet[m.rng.IntN(len(joinCodeAlphabet))]
		}
		if _, taken := m.byCode[string(code)]; !taken {
			return string(code)
		}
	}
}
