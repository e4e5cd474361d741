package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	AppName      = "GraceGuideAI"
	AppSite      = "graceguide.ai"
	AppUserAgent = "GraceGuide-CLI/0.1"
	AppVersion   = "0.1.0"
)

var ErrUnknownMode = errors.New("unknown source mode")

// SourceMode selects which corpus grounds the answer.
type SourceMode string

const (
	ModeBoth      SourceMode = "both"
	ModeBible     SourceMode = "bible"
	ModeCatechism SourceMode = "catechism"
)

var modeOrder = []SourceMode{ModeBoth, ModeBible, ModeCatechism}

// Modes returns the modes in selector order (Blend, Bible, CCC).
func Modes() []SourceMode {
	return append([]SourceMode(nil), modeOrder...)
}

// ParseSourceMode accepts wire values, selector labels and slider indexes.
// An empty string means the default blend.
func ParseSourceMode(s string) (SourceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "both", "blend":
		return ModeBoth, nil
	case "1", "bible":
		return ModeBible, nil
	case "2", "catechism", "ccc":
		return ModeCatechism, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Label is the short selector caption.
func (m SourceMode) Label() string {
	switch m {
	case ModeBible:
		return "Bible"
	case ModeCatechism:
		return "CCC"
	default:
		return "Blend"
	}
}

// Next cycles Blend -> Bible -> CCC -> Blend.
func (m SourceMode) Next() SourceMode {
	for i, mode := range modeOrder {
		if mode == m {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return ModeBoth
}

// Answer is the /qa response.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

type HistoryEntry struct {
	ID        int64      `json:"id" yaml:"id"`
	Question  string     `json:"question" yaml:"question"`
	Answer    string     `json:"answer" yaml:"answer"`
	Sources   []string   `json:"sources,omitempty" yaml:"sources,omitempty"`
	Mode      SourceMode `json:"mode" yaml:"mode"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

// EngagementState drives the subscribe prompt. Everything except
// ModalShownThisSession survives across sessions.
type EngagementState struct {
	AskCount              int
	Subscribed            bool
	DeferredUntil         int
	ModalShownThisSession bool
}

type Celebration struct {
	Title  string `json:"title"`
	Colour string `json:"colour,omitempty"`
	Rank   string `json:"rank,omitempty"`
}

type LiturgicalDay struct {
	Date         string        `json:"date,omitempty"`
	Season       string        `json:"season,omitempty"`
	Weekday      string        `json:"weekday,omitempty"`
	Celebrations []Celebration `json:"celebrations"`
}

// Title is the first celebration's title, or "" when there is none.
func (d LiturgicalDay) Title() string {
	if len(d.Celebrations) == 0 {
		return ""
	}
	return d.Celebrations[0].Title
}

type Verse struct {
	Text                string   `json:"verse_text"`
	Reference           string   `json:"verse_reference"`
	Explanation         string   `json:"explanation"`
	CatechismReferences []string `json:"catechism_references"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Telemetry events sent to /log_event.
const (
	EventModalShown   = "modal_shown"
	EventModalClose   = "modal_close"
	EventMaybeLater   = "maybe_later"
	EventEmailSuccess = "email_success"
	EventEmailFailure = "email_failure"
)
