package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type blockingService struct {
	mu       sync.Mutex
	order    *[]string
	name     string
	stop     chan struct{}
	startErr error
}

func newBlocking(name string, order *[]string) *blockingService {
	return &blockingService{name: name, order: order, stop: make(chan struct{})}
}

func (b *blockingService) Start(ctx context.Context) error {
	if b.startErr != nil {
		return b.startErr
	}
	<-b.stop
	return nil
}

func (b *blockingService) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	*b.order = append(*b.order, b.name)
	b.mu.Unlock()
	close(b.stop)
	return nil
}

func TestRun_ShutsDownInReverseOrderOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	var order []string
	first := newBlocking("first", &order)
	second := newBlocking("second", &order)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, []Service{first, second}) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestRun_StartFailureStopsEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	var order []string
	healthy := newBlocking("healthy", &order)
	broken := newBlocking("broken", &order)
	broken.startErr = errors.New("bad token")

	err := Run(context.Background(), []Service{healthy, broken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad token")
	assert.Contains(t, order, "healthy")
}

func TestCleanup_RunsOnShutdown(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	require.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)
}
