package core

import "time"

type APIConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
}

type HistoryConfig interface {
	GetHistoryLimit() int
}

type EngagementConfig interface {
	GetNagThreshold() int
	GetDeferSpan() int
	GetSessionIdle() time.Duration
}

type ShareConfig interface {
	GetShareDir() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
