// Package engagement decides when to show the subscribe prompt.
//
// The policy functions are pure: they take a state and return a new one.
// Gate wraps them with persistence, sessions and telemetry.
package engagement

import "github.com/graceguide/grace/internal/core"

const (
	DefaultThreshold = 5
	DefaultDeferSpan = 10
)

// RecordAsk counts one successful answer.
func RecordAsk(s core.EngagementState) core.EngagementState {
	s.AskCount++
	return s
}

func ShouldShow(s core.EngagementState, threshold int) bool {
	return !s.Subscribed &&
		s.AskCount >= threshold &&
		s.AskCount >= s.DeferredUntil &&
		!s.ModalShownThisSession
}

// Defer postpones the prompt until span more answers have been counted.
func Defer(s core.EngagementState, span int) core.EngagementState {
	s.DeferredUntil = s.AskCount + span
	return s
}

func Subscribe(s core.EngagementState) core.EngagementState {
	s.Subscribed = true
	return s
}

// Normalize runs on every load. The shown flag is dropped while the user is
// below the threshold or inside a deferral window, so a deferred prompt can
// come back later in the same session.
func Normalize(s core.EngagementState, threshold int) core.EngagementState {
	if s.AskCount < threshold || s.AskCount < s.DeferredUntil {
		s.ModalShownThisSession = false
	}
	return s
}

// BeginSession starts a fresh session with the prompt allowed again.
func BeginSession(s core.EngagementState, threshold int) core.EngagementState {
	s.ModalShownThisSession = false
	return Normalize(s, threshold)
}
