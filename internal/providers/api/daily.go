package api

import (
	"context"
	"sync"
	"time"

	"github.com/graceguide/grace/internal/core"
)

// DailyCache memoises daily content per calendar day. It wraps the full
// service so it can be dropped in wherever a core.AnswerService is used.
type DailyCache struct {
	core.AnswerService

	mu       sync.RWMutex
	now      func() time.Time
	days     map[string]core.LiturgicalDay
	verse    core.Verse
	verseDay string
}

func NewDailyCache(svc core.AnswerService) *DailyCache {
	return &DailyCache{
		AnswerService: svc,
		now:           time.Now,
		days:          make(map[string]core.LiturgicalDay),
	}
}

func (c *DailyCache) today() string {
	return c.now().Format(dateLayout)
}

func (c *DailyCache) LiturgicalDay(ctx context.Context, date time.Time) (core.LiturgicalDay, error) {
	key := c.today()
	if !date.IsZero() {
		key = date.Format(dateLayout)
	}

	c.mu.RLock()
	day, ok := c.days[key]
	c.mu.RUnlock()
	if ok {
		return copyDay(day), nil
	}

	day, err := c.AnswerService.LiturgicalDay(ctx, date)
	if err != nil {
		return core.LiturgicalDay{}, err
	}

	c.mu.Lock()
	c.days[key] = copyDay(day)
	c.mu.Unlock()
	return day, nil
}

func (c *DailyCache) VerseOfTheDay(ctx context.Context) (core.Verse, error) {
	key := c.today()

	c.mu.RLock()
	if c.verseDay == key {
		v := c.verse
		c.mu.RUnlock()
		v.CatechismReferences = append([]string(nil), v.CatechismReferences...)
		return v, nil
	}
	c.mu.RUnlock()

	v, err := c.AnswerService.VerseOfTheDay(ctx)
	if err != nil {
		return core.Verse{}, err
	}

	c.mu.Lock()
	c.verse = v
	c.verse.CatechismReferences = append([]string(nil), v.CatechismReferences...)
	c.verseDay = key
	c.mu.Unlock()
	return v, nil
}

func copyDay(d core.LiturgicalDay) core.LiturgicalDay {
	d.Celebrations = append([]core.Celebration(nil), d.Celebrations...)
	return d
}
