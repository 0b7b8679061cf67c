package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	"github.com/GregMSThompson/expat-financier/internal/dialog"
	"github.com/GregMSThompson/expat-financier/internal/dto"
	"github.com/GregMSThompson/expat-financier/pkg/logger"
)

const pollTimeout = 10 * time.Second

type dialogEngine interface {
	Handle(ctx context.Context, ev dialog.Event) dto.Reply
}

type Options struct {
	Token string
	// Poll selects long polling; otherwise updates arrive through ProcessUpdate.
	Poll bool
	// Offline skips the getMe call made at startup.
	Offline bool
}

// Bot adapts Telegram updates to dialog events and sends the replies back.
type Bot struct {
	bot    *tele.Bot
	engine dialogEngine
	log    *slog.Logger
}

func New(log *slog.Logger, engine dialogEngine, opts Options) (*Bot, error) {
	b := &Bot{engine: engine, log: log}

	bot, err := tele.NewBot(settings(opts, b.onError))
	if err != nil {
		return nil, err
	}
	b.bot = bot

	bot.Handle("/start", b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.StartEvent(uid)
	}))
	bot.Handle("/cancel", b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.CancelEvent(uid)
	}))
	bot.Handle(tele.OnText, b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.TextEvent(uid, c.Text())
	}))
	bot.Handle(tele.OnCallback, b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.ActionEvent(uid, c.Callback().Data)
	}))

	return b, nil
}

// ProcessUpdate dispatches one webhook update. With synchronous dispatch
// the reply has been sent by the time it returns.
func (b *Bot) ProcessUpdate(u tele.Update) {
	b.bot.ProcessUpdate(u)
}

// Run long-polls until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	b.log.Info("telegram polling started")
	b.bot.Start()
}

// settings always dispatches synchronously: each update is handled to
// completion before the next is read, so one user's messages apply in order.
func settings(opts Options, onError func(error, tele.Context)) tele.Settings {
	pref := tele.Settings{
		Token:       opts.Token,
		Synchronous: true,
		Offline:     opts.Offline,
		OnError:     onError,
	}
	if opts.Poll {
		pref.Poller = &tele.LongPoller{Timeout: pollTimeout}
	}
	return pref
}

func (b *Bot) handle(toEvent func(c tele.Context, uid string) dialog.Event) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		uid := strconv.FormatInt(sender.ID, 10)
		_, ctx := logger.With(logger.ToContext(context.Background(), b.log), "user_id", uid, "event_id", uuid.NewString())

		if c.Callback() != nil {
			if err := c.Respond(); err != nil {
				logger.FromContext(ctx).Warn("callback acknowledge failed", "error", err)
			}
		}

		reply := b.engine.Handle(ctx, toEvent(c, uid))
		if err := c.Send(reply.Text, SendOptions(reply)...); err != nil {
			logger.FromContext(ctx).Error("send reply failed", "error", err)
			return err
		}
		return nil
	}
}

func (b *Bot) onError(err error, c tele.Context) {
	log := b.log
	if c != nil && c.Sender() != nil {
		log = log.With("user_id", strconv.FormatInt(c.Sender().ID, 10))
	}
	log.Error("telegram handler failed", "error", err)
}
