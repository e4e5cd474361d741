package api

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	core.AnswerService

	mu        sync.Mutex
	dayCalls  int
	verseCall int
	fail      error
}

func (s *countingService) LiturgicalDay(ctx context.Context, date time.Time) (core.LiturgicalDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayCalls++
	if s.fail != nil {
		return core.LiturgicalDay{}, s.fail
	}
	return core.LiturgicalDay{Celebrations: []core.Celebration{{Title: "Feast " + date.Format(dateLayout)}}}, nil
}

func (s *countingService) VerseOfTheDay(ctx context.Context) (core.Verse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verseCall++
	if s.fail != nil {
		return core.Verse{}, s.fail
	}
	return core.Verse{Reference: "Ps 23:1", CatechismReferences: []string{"CCC 2559"}}, nil
}

func TestDailyCache_LiturgicalDay(t *testing.T) {
	svc := &countingService{}
	cache := NewDailyCache(svc)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	first, err := cache.LiturgicalDay(ctx, day)
	require.NoError(t, err)
	second, err := cache.LiturgicalDay(ctx, day)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, svc.dayCalls)

	// mutating a returned value must not leak into the cache
	first.Celebrations[0].Title = "changed"
	third, err := cache.LiturgicalDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "Feast 2026-10-18", third.Title())

	_, err = cache.LiturgicalDay(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, svc.dayCalls)
}

func TestDailyCache_VerseRefreshesNextDay(t *testing.T) {
	svc := &countingService{}
	cache := NewDailyCache(svc)
	now := time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	_, err := cache.VerseOfTheDay(ctx)
	require.NoError(t, err)
	_, err = cache.VerseOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.verseCall)

	now = now.Add(2 * time.Hour)
	_, err = cache.VerseOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.verseCall)
}

func TestDailyCache_ErrorsAreNotCached(t *testing.T) {
	svc := &countingService{fail: errors.New("offline")}
	cache := NewDailyCache(svc)
	ctx := context.Background()

	_, err := cache.VerseOfTheDay(ctx)
	require.Error(t, err)

	svc.fail = nil
	v, err := cache.VerseOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ps 23:1", v.Reference)
	assert.Equal(t, 2, svc.verseCall)
}
