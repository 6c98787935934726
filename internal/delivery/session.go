// Package delivery is the runtime side of an alarm: it plays the adhan when
// the OS fires a ticket, enforcing a single active playback session.
package delivery

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/captian10/adhan-engine/internal/redis"
)

// ErrNoSoundAsset means the whole fallback chain came up empty; the session
// aborts rather than crash or retry.
var ErrNoSoundAsset = errors.New("no playable sound asset found")

// DeepLink builds the full-screen notice link for a fired prayer. Unknown
// labels are passed through verbatim.
func DeepLink(prayer string) string {
	return "app://adhan?prayer=" + url.QueryEscape(prayer)
}

// UILauncher hands a fired alarm off to the host's full-screen notice.
type UILauncher interface {
	OpenAdhanScreen(prayer string) error
}

// OpenGuard is the durable idempotency token behind the one-shot UI hand-off.
// FirstOpen returns true exactly once per token, surviving process restarts,
// so a re-entered session does not reopen the UI.
type OpenGuard interface {
	FirstOpen(ctx context.Context, token string) bool
}

const uiOpenTokenTTL = 2 * time.Hour

// RedisGuard keeps tokens in redis so the guard survives a service restart.
type RedisGuard struct{}

var _ OpenGuard = (*RedisGuard)(nil)

func (RedisGuard) FirstOpen(ctx context.Context, token string) bool {
	return redis.SetNX(ctx, "adhan_ui_opened:"+token, "1", uiOpenTokenTTL)
}

// MemGuard is an in-process OpenGuard for tests and redis-less deployments.
type MemGuard struct {
	mu     sync.Mutex
	opened map[string]bool
}

var _ OpenGuard = (*MemGuard)(nil)

func NewMemGuard() *MemGuard {
	return &MemGuard{opened: make(map[string]bool)}
}

func (g *MemGuard) FirstOpen(ctx context.Context, token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.opened[token] {
		return false
	}
	g.opened[token] = true
	return true
}

type sessionState int

const (
	stateIdle sessionState = iota
	statePlaying
	stateStopped
)

// Session owns playback for fired alarms. At most one playback handle exists
// at any time; Start enforces that by construction, tearing down whatever is
// playing before starting anew.
type Session struct {
	assets Assets
	player Player
	guard  OpenGuard
	ui     UILauncher

	mu             sync.Mutex
	state          sessionState
	handle         PlaybackHandle
	requestedSound string
	resolvedSound  string
}

func NewSession(assets Assets, player Player, guard OpenGuard, ui UILauncher) *Session {
	return &Session{assets: assets, player: player, guard: guard, ui: ui}
}

// Start plays the sound for a fired ticket. The requested sound resolves
// through the fallback chain; a fully missing chain aborts the session with
// ErrNoSoundAsset. The full-screen hand-off happens at most once per ticket.
func (s *Session) Start(ctx context.Context, ticketID, soundID, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	resolved, ok := ResolveSound(s.assets, soundID)
	if !ok {
		log.Error().Str("sound_id", soundID).Msg("no audio assets available, aborting delivery")
		s.state = stateIdle
		return ErrNoSoundAsset
	}
	s.requestedSound = soundID
	s.resolvedSound = resolved

	if s.ui != nil && s.guard.FirstOpen(ctx, ticketID) {
		if err := s.ui.OpenAdhanScreen(label); err != nil {
			log.Error().Err(err).Str("prayer", label).Msg("failed to open adhan screen")
		}
	}

	handle, err := s.player.Play(ctx, s.assets.Path(resolved))
	if err != nil {
		log.Error().Err(err).Str("sound_id", resolved).Msg("playback failed to start")
		s.state = stateIdle
		return err
	}

	s.handle = handle
	s.state = statePlaying
	log.Info().Str("ticket_id", ticketID).Str("sound_id", resolved).Str("prayer", label).Msg("delivery started")

	go func() {
		<-handle.Done()
		s.mu.Lock()
		if s.handle == handle {
			s.handle = nil
			s.state = stateStopped
		}
		s.mu.Unlock()
	}()
	return nil
}

// Stop tears down playback if any is running. Safe to call at any time;
// returns whether something was actually stopped.
func (s *Session) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *Session) stopLocked() bool {
	if s.handle == nil {
		return false
	}
	s.handle.Stop()
	s.handle = nil
	s.state = stateStopped
	return true
}

// Playing reports whether a playback handle is currently live.
func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// ResolvedSound is the asset the current or last session actually played.
func (s *Session) ResolvedSound() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolvedSound
}
