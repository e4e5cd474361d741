package engagement

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/pkg/log"
)

var ErrEmptyEmail = errors.New("email is required")

type Subscriber interface {
	Subscribe(ctx context.Context, email string) error
}

// Gate is the storage-backed subscribe prompt. The shown flag is scoped to a
// session id that expires after an idle period.
type Gate struct {
	repo       core.StateRepository
	events     core.EventLogger
	subscriber Subscriber

	threshold int
	span      int
	idle      time.Duration

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func NewGate(
	repo core.StateRepository,
	svc interface {
		Subscriber
		core.EventLogger
	},
	cfg core.EngagementConfig,
) *Gate {
	return &Gate{
		repo:       repo,
		events:     svc,
		subscriber: svc,
		threshold:  cfg.GetNagThreshold(),
		span:       cfg.GetDeferSpan(),
		idle:       cfg.GetSessionIdle(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// loaded is the decoded state plus the session it belongs to.
type loaded struct {
	state     core.EngagementState
	sessionID string
}

var stateKeys = []string{
	core.KeyAskCount,
	core.KeyMaybeLater,
	core.KeySubscribed,
	core.KeySessionID,
	core.KeySessionSeen,
	core.KeyModalShownInID,
}

// StartSession forces a new session, as opening a new tab would.
func (g *Gate) StartSession(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.newID()
	err := g.repo.Set(ctx, map[string]string{
		core.KeySessionID:   id,
		core.KeySessionSeen: g.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}
	if err := g.repo.Delete(ctx, core.KeyModalShownInID); err != nil {
		return "", err
	}

	log.FromCtx(ctx).Debug().Str("session", id).Msg("engagement session started")
	return id, nil
}

func (g *Gate) State(ctx context.Context) (core.EngagementState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, err := g.load(ctx)
	if err != nil {
		return core.EngagementState{}, err
	}
	return l.state, nil
}

// OnAnswer counts a successful answer and reports whether the prompt should
// be shown now. A shown prompt is marked for the session and logged.
func (g *Gate) OnAnswer(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, err := g.load(ctx)
	if err != nil {
		return false, err
	}

	s := RecordAsk(l.state)
	show := ShouldShow(s, g.threshold)

	values := map[string]string{core.KeyAskCount: strconv.Itoa(s.AskCount)}
	if show {
		values[core.KeyModalShownInID] = l.sessionID
	}
	if err := g.repo.Set(ctx, values); err != nil {
		return false, fmt.Errorf("failed to save ask count: %w", err)
	}

	if show {
		log.FromCtx(ctx).Debug().Int("ask_count", s.AskCount).Msg("showing subscribe prompt")
		g.events.LogEvent(ctx, core.EventModalShown)
	}
	return show, nil
}

func (g *Gate) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}

	if err := g.subscriber.Subscribe(ctx, email); err != nil {
		g.events.LogEvent(ctx, core.EventEmailFailure)
		return fmt.Errorf("subscribe failed: %w", err)
	}

	g.mu.Lock()
	err := g.repo.Set(ctx, map[string]string{core.KeySubscribed: "true"})
	g.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	g.events.LogEvent(ctx, core.EventEmailSuccess)
	return nil
}

// MaybeLater hides the prompt for the next defer span answers.
func (g *Gate) MaybeLater(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, err := g.load(ctx)
	if err != nil {
		return err
	}

	s := Defer(l.state, g.span)
	if err := g.repo.Set(ctx, map[string]string{core.KeyMaybeLater: strconv.Itoa(s.DeferredUntil)}); err != nil {
		return fmt.Errorf("failed to save deferral: %w", err)
	}

	g.events.LogEvent(ctx, core.EventMaybeLater)
	return nil
}

// Close dismisses the prompt for the rest of the session.
func (g *Gate) Close(ctx context.Context) {
	g.events.LogEvent(ctx, core.EventModalClose)
}

func (g *Gate) load(ctx context.Context) (loaded, error) {
	raw, err := g.repo.GetMany(ctx, stateKeys...)
	if err != nil {
		return loaded{}, fmt.Errorf("failed to load engagement state: %w", err)
	}

	now := g.now().UTC()
	logger := log.FromCtx(ctx)

	l := loaded{sessionID: raw[core.KeySessionID]}
	l.state.AskCount = atoi(ctx, raw, core.KeyAskCount)
	l.state.DeferredUntil = atoi(ctx, raw, core.KeyMaybeLater)
	l.state.Subscribed = raw[core.KeySubscribed] == "true"

	updates := map[string]string{core.KeySessionSeen: now.Format(time.RFC3339Nano)}

	if g.sessionExpired(raw, now) {
		l.sessionID = g.newID()
		updates[core.KeySessionID] = l.sessionID
		l.state = BeginSession(l.state, g.threshold)
		logger.Debug().Str("session", l.sessionID).Msg("engagement session rolled over")
	} else {
		l.state.ModalShownThisSession = raw[core.KeyModalShownInID] == l.sessionID
	}

	wasShown := l.state.ModalShownThisSession
	l.state = Normalize(l.state, g.threshold)

	if err := g.repo.Set(ctx, updates); err != nil {
		return loaded{}, fmt.Errorf("failed to touch session: %w", err)
	}
	if wasShown && !l.state.ModalShownThisSession {
		if err := g.repo.Delete(ctx, core.KeyModalShownInID); err != nil {
			return loaded{}, err
		}
	}
	return l, nil
}

func (g *Gate) sessionExpired(raw map[string]string, now time.Time) bool {
	if raw[core.KeySessionID] == "" {
		return true
	}
	seen, err := time.Parse(time.RFC3339Nano, raw[core.KeySessionSeen])
	if err != nil {
		return true
	}
	return now.Sub(seen) > g.idle
}

// atoi treats a missing or corrupted counter as zero.
func atoi(ctx context.Context, raw map[string]string, key string) int {
	v, ok := raw[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.FromCtx(ctx).Warn().Str("key", key).Str("value", v).Msg("ignoring corrupted counter")
		return 0
	}
	return n
}
