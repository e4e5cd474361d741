package share

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/pkg/log"
)

type Target string

const (
	TargetDownload  Target = "download"
	TargetX         Target = "x"
	TargetEmail     Target = "email"
	TargetClipboard Target = "clipboard"
	TargetTelegram  Target = "telegram"
)

var ErrUnknownTarget = errors.New("unknown share target")

const (
	tweetIntent = "https://x.com/intent/tweet?text=GraceGuideAI%20Q%26A"
	mailIntent  = "mailto:?subject=GraceGuideAI%20Q%26A"
)

func Targets() []Target {
	return []Target{TargetDownload, TargetX, TargetEmail, TargetClipboard, TargetTelegram}
}

func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "":
		return TargetDownload, nil
	case "twitter":
		return TargetX, nil
	case "mail":
		return TargetEmail, nil
	}
	for _, known := range Targets() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// IntentURL is the web share link for x and email targets.
func IntentURL(t Target, question, answer string) (string, error) {
	switch t {
	case TargetX:
		return tweetIntent, nil
	case TargetEmail:
		// mail clients read "+" literally, so spaces are sent as %20
		body := strings.ReplaceAll(url.QueryEscape(Text(question, answer)), "+", "%20")
		return mailIntent + "&body=" + body, nil
	}
	return "", fmt.Errorf("%w: %q has no intent link", ErrUnknownTarget, t)
}

// Text is the plain text form of a card.
func Text(question, answer string) string {
	return fmt.Sprintf("%s\n\nQ: %s\n\nA: %s\n\n%s",
		core.AppName, strings.TrimSpace(question), strings.TrimSpace(answer), core.AppSite)
}

type Opener interface {
	Open(url string) error
}

type Clipboard interface {
	WriteAll(text string) error
}

// Result describes what a share did.
type Result struct {
	Target Target
	Path   string
	URL    string
	Image  []byte
	Copied bool
}

// Sharer renders cards on demand and delivers them. Nothing is kept after a
// share returns unless the target writes a file.
type Sharer struct {
	renderer *Renderer
	dir      string
	opener   Opener
	clip     Clipboard
	now      func() time.Time
}

func NewSharer(renderer *Renderer, cfg core.ShareConfig) *Sharer {
	return &Sharer{
		renderer: renderer,
		dir:      cfg.GetShareDir(),
		opener:   SystemOpener{},
		clip:     SystemClipboard{},
		now:      time.Now,
	}
}

// Share delivers entry to target. out overrides the download path.
func (s *Sharer) Share(ctx context.Context, entry core.HistoryEntry, target Target, out string) (Result, error) {
	logger := log.FromCtx(ctx)
	res := Result{Target: target}

	switch target {
	case TargetDownload, TargetTelegram:
		img, err := s.renderer.Render(entry.Question, entry.Answer)
		if err != nil {
			return Result{}, fmt.Errorf("failed to generate share image: %w", err)
		}
		res.Image = img
		if target == TargetTelegram {
			return res, nil
		}

		path := out
		if path == "" {
			path = filepath.Join(s.dir, fmt.Sprintf("graceguide-%s.png", s.now().Format("20060102-150405")))
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return Result{}, fmt.Errorf("failed to create share directory: %w", err)
		}
		if err := os.WriteFile(path, img, 0644); err != nil {
			return Result{}, fmt.Errorf("failed to save share image: %w", err)
		}
		res.Path = path
		logger.Debug().Str("path", path).Msg("share card saved")
		return res, nil

	case TargetX, TargetEmail:
		link, err := IntentURL(target, entry.Question, entry.Answer)
		if err != nil {
			return Result{}, err
		}
		res.URL = link
		if err := s.opener.Open(link); err != nil {
			// no browser: leave the text on the clipboard instead
			logger.Debug().Err(err).Str("target", string(target)).Msg("opener unavailable, copying text")
			if cerr := s.clip.WriteAll(Text(entry.Question, entry.Answer)); cerr != nil {
				return res, fmt.Errorf("failed to open %s: %w", link, err)
			}
			res.Copied = true
		}
		return res, nil

	case TargetClipboard:
		if err := s.clip.WriteAll(Text(entry.Question, entry.Answer)); err != nil {
			return Result{}, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		res.Copied = true
		return res, nil
	}

	return Result{}, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
}

// SystemOpener hands URLs to the desktop's default handler.
type SystemOpener struct{}

func (SystemOpener) Open(link string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	case "darwin":
		cmd = exec.Command("open", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	return cmd.Start()
}

type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}
