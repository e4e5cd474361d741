package engagement

import (
	"testing"

	"github.com/graceguide/grace/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestShouldShow(t *testing.T) {
	tests := []struct {
		name  string
		state core.EngagementState
		want  bool
	}{
		{"below threshold", core.EngagementState{AskCount: 4}, false},
		{"at threshold", core.EngagementState{AskCount: 5}, true},
		{"past threshold", core.EngagementState{AskCount: 9}, true},
		{"subscribed", core.EngagementState{AskCount: 50, Subscribed: true}, false},
		{"deferred", core.EngagementState{AskCount: 14, DeferredUntil: 15}, false},
		{"deferral reached", core.EngagementState{AskCount: 15, DeferredUntil: 15}, true},
		{"already shown", core.EngagementState{AskCount: 6, ModalShownThisSession: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldShow(tt.state, DefaultThreshold))
		})
	}
}

func TestPolicyTransitions(t *testing.T) {
	s := core.EngagementState{AskCount: 4}

	s = RecordAsk(s)
	assert.Equal(t, 5, s.AskCount)

	s = Defer(s, DefaultDeferSpan)
	assert.Equal(t, 15, s.DeferredUntil)
	assert.Equal(t, 5, s.AskCount, "defer does not count an ask")

	s = Subscribe(s)
	assert.True(t, s.Subscribed)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		state core.EngagementState
		want  bool
	}{
		{"below threshold clears", core.EngagementState{AskCount: 3, ModalShownThisSession: true}, false},
		{"inside deferral clears", core.EngagementState{AskCount: 6, DeferredUntil: 15, ModalShownThisSession: true}, false},
		{"closed prompt stays shown", core.EngagementState{AskCount: 6, ModalShownThisSession: true}, true},
		{"deferral reached stays shown", core.EngagementState{AskCount: 15, DeferredUntil: 15, ModalShownThisSession: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.state, DefaultThreshold).ModalShownThisSession)
		})
	}
}

func TestBeginSession(t *testing.T) {
	s := BeginSession(core.EngagementState{AskCount: 8, ModalShownThisSession: true}, DefaultThreshold)
	assert.False(t, s.ModalShownThisSession)
	assert.Equal(t, 8, s.AskCount)
}
