package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/session"
	"github.com/graceguide/grace/internal/service/share"
	"github.com/graceguide/grace/pkg/conv"
	"github.com/graceguide/grace/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"
	busyReply      = "Still working on your last question…"
)

// Session is what the bot needs from the session controller.
type Session interface {
	Ask(ctx context.Context, req session.AskRequest) (session.AskResult, error)
	Share(ctx context.Context, n int, target share.Target, out string) (share.Result, error)
	MaybeLater(ctx context.Context) error
	ClosePrompt(ctx context.Context)
	Busy() bool
}

type Bot struct {
	bot     *tele.Bot
	session Session
	router  core.CmdRouter
	sender  *sender
	ownerID int64

	prompt   *tele.ReplyMarkup
	btnLater tele.Btn
	btnClose tele.Btn
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	s Session,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		session: s,
		router:  router,
		sender:  newSender(b),
		ownerID: cfg.GetTelegramOwnerID(),
		prompt:  &tele.ReplyMarkup{},
	}
	bot.btnLater = bot.prompt.Data("Maybe later", "later")
	bot.btnClose = bot.prompt.Data("Close", "close")
	bot.prompt.Inline(bot.prompt.Row(bot.btnLater, bot.btnClose))

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle("/share", bot.handleShare)
	b.Handle(&bot.btnLater, bot.handleLater)
	b.Handle(&bot.btnClose, bot.handleClose)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func baseContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(baseContextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := baseContext(c)
	help, _ := b.router.Execute(ctx, "/help")
	intro := fmt.Sprintf("**Welcome to %s**\n\nAsk any question about the Bible or the Catechism.\n\n%s", core.AppName, help)
	return b.sender.sendMarkdown(ctx, c.Recipient(), intro, false)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := baseContext(c)
	logger := log.FromCtx(ctx)

	if out, ok := b.router.Execute(ctx, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Recipient(), out, false)
	}

	if b.session.Busy() {
		return c.Send(busyReply)
	}

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	res, err := b.session.Ask(ctx, session.AskRequest{Question: c.Text()})
	switch {
	case errors.Is(err, session.ErrEmptyQuestion):
		return nil
	case errors.Is(err, session.ErrBusy):
		return c.Send(busyReply)
	case err != nil:
		logger.Error().Err(err).Msg("ask failed")
		return c.Send(fmt.Sprintf("Sorry, something went wrong: %v", err))
	}

	html := conv.AnswerToTelegramHTML(res.Entry.Answer, res.Entry.Sources)
	if err := b.sender.sendHTML(ctx, c.Recipient(), html); err != nil {
		return err
	}

	if res.ShowPrompt {
		_, err := b.bot.Send(c.Recipient(),
			"<b>Enjoying GraceGuide?</b>\nGet a daily verse and reflection by email: reply <code>/subscribe you@example.com</code>",
			tele.ModeHTML, b.prompt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("failed to send subscribe prompt")
		}
	}
	return nil
}

// handleShare sends the card as a photo, the chat's share sheet.
func (b *Bot) handleShare(c tele.Context) error {
	ctx := baseContext(c)

	n, err := shareIndex(c.Args())
	if err != nil {
		return c.Send("Usage: /share [N]")
	}

	res, err := b.session.Share(ctx, n, share.TargetTelegram, "")
	if errors.Is(err, core.ErrNotFound) {
		return c.Send(fmt.Sprintf("No history entry #%d", n))
	}
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("share failed")
		return c.Send(fmt.Sprintf("Could not create share image: %v", err))
	}

	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(res.Image)),
		Caption: core.AppName + " · " + core.AppSite,
	}
	return c.Send(photo)
}

func (b *Bot) handleLater(c tele.Context) error {
	ctx := baseContext(c)
	if err := b.session.MaybeLater(ctx); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("maybe later failed")
	}
	_ = c.Respond(&tele.CallbackResponse{Text: "We'll ask again later"})
	return c.Delete()
}

func (b *Bot) handleClose(c tele.Context) error {
	ctx := baseContext(c)
	b.session.ClosePrompt(ctx)
	_ = c.Respond()
	return c.Delete()
}

func shareIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid index %q", args[0])
	}
	return n, nil
}
