package core

import (
	"context"
	"time"
)

// AnswerService is the remote GraceGuide API.
type AnswerService interface {
	Ask(ctx context.Context, question string, mode SourceMode) (Answer, error)
	Subscribe(ctx context.Context, email string) error
	EventLogger
	DailyContent
}

// EventLogger is best effort: implementations never fail the caller.
type EventLogger interface {
	LogEvent(ctx context.Context, event string)
}

type DailyContent interface {
	LiturgicalDay(ctx context.Context, date time.Time) (LiturgicalDay, error)
	VerseOfTheDay(ctx context.Context) (Verse, error)
}
