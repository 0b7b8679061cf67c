package telegram

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"github.com/GregMSThompson/expat-financier/internal/dialog"
	"github.com/GregMSThompson/expat-financier/internal/dto"
	"github.com/GregMSThompson/expat-financier/pkg/logger"
)

type stubEngine struct {
	events []dialog.Event
	reply  dto.Reply
}

func (s *stubEngine) Handle(ctx context.Context, ev dialog.Event) dto.Reply {
	s.events = append(s.events, ev)
	return s.reply
}

// stubContext implements the parts of tele.Context the handlers use.
type stubContext struct {
	tele.Context
	sender    *tele.User
	text      string
	callback  *tele.Callback
	sent      []interface{}
	sentOpts  [][]interface{}
	responded int
	sendErr   error
}

func (c *stubContext) Sender() *tele.User       { return c.sender }
func (c *stubContext) Text() string             { return c.text }
func (c *stubContext) Callback() *tele.Callback { return c.callback }

func (c *stubContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	c.sentOpts = append(c.sentOpts, opts)
	return c.sendErr
}

func (c *stubContext) Respond(_ ...*tele.CallbackResponse) error {
	c.responded++
	return nil
}

func newTestBot(t *testing.T, engine *stubEngine) *Bot {
	t.Helper()
	b, err := New(slog.New(logger.NewTestHandler(slog.LevelInfo)), engine, Options{Token: "123:abc", Offline: true})
	require.NoError(t, err)
	return b
}

func TestHandleTextSendsReply(t *testing.T) {
	engine := &stubEngine{reply: dto.Reply{
		Text:    "📊 dashboard",
		Actions: [][]dto.Action{{{Label: "⚙️ Update", Tag: dto.ActionMenu}}},
	}}
	b := newTestBot(t, engine)
	c := &stubContext{sender: &tele.User{ID: 42}, text: "10,000"}

	err := b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.TextEvent(uid, c.Text())
	})(c)

	require.NoError(t, err)
	require.Len(t, engine.events, 1)
	assert.Equal(t, dialog.TextEvent("42", "10,000"), engine.events[0])
	require.Len(t, c.sent, 1)
	assert.Equal(t, "📊 dashboard", c.sent[0])
	assert.Contains(t, c.sentOpts[0], Markup(engine.reply))
	assert.Zero(t, c.responded)
}

func TestHandleCallbackAcknowledges(t *testing.T) {
	engine := &stubEngine{reply: dto.Reply{Text: "What would you like to update?"}}
	b := newTestBot(t, engine)
	c := &stubContext{sender: &tele.User{ID: 7}, callback: &tele.Callback{Data: dto.ActionUpdateIncome}}

	err := b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.ActionEvent(uid, c.Callback().Data)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, 1, c.responded)
	assert.Equal(t, []dialog.Event{dialog.ActionEvent("7", dto.ActionUpdateIncome)}, engine.events)
}

func TestHandleIgnoresAnonymousUpdates(t *testing.T) {
	engine := &stubEngine{}
	b := newTestBot(t, engine)
	c := &stubContext{text: "hi"}

	err := b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.TextEvent(uid, c.Text())
	})(c)

	require.NoError(t, err)
	assert.Empty(t, engine.events)
	assert.Empty(t, c.sent)
}

func TestHandleReturnsSendError(t *testing.T) {
	engine := &stubEngine{reply: dto.Reply{Text: "hello"}}
	b := newTestBot(t, engine)
	c := &stubContext{sender: &tele.User{ID: 1}, text: "hi", sendErr: errors.New("telegram unavailable")}

	err := b.handle(func(c tele.Context, uid string) dialog.Event {
		return dialog.TextEvent(uid, c.Text())
	})(c)

	assert.EqualError(t, err, "telegram unavailable")
}

func TestMarkup(t *testing.T) {
	assert.Nil(t, Markup(dto.Reply{Text: "plain"}))

	m := Markup(dto.Reply{Actions: [][]dto.Action{
		{{Label: "⚙️ Update", Tag: dto.ActionMenu}, {Label: "🔄 Refresh", Tag: dto.ActionDashboard}},
		{{Label: "Food", Tag: dto.ActionExpensePrefix + "food"}},
	}})

	require.NotNil(t, m)
	assert.Equal(t, [][]tele.InlineButton{
		{{Text: "⚙️ Update", Data: dto.ActionMenu}, {Text: "🔄 Refresh", Data: dto.ActionDashboard}},
		{{Text: "Food", Data: "expense:food"}},
	}, m.InlineKeyboard)
}

func TestSendOptionsOmitMarkupWithoutActions(t *testing.T) {
	assert.Equal(t, []interface{}{tele.NoPreview}, SendOptions(dto.Reply{Text: "x"}))
	assert.Len(t, SendOptions(dto.Reply{Actions: [][]dto.Action{{{Label: "a", Tag: "b"}}}}), 2)
}

func TestSettingsDispatchInOrder(t *testing.T) {
	for _, poll := range []bool{false, true} {
		pref := settings(Options{Token: "123:abc", Poll: poll}, nil)

		assert.True(t, pref.Synchronous, "poll=%v must handle updates one at a time", poll)
		if poll {
			require.IsType(t, &tele.LongPoller{}, pref.Poller)
		} else {
			assert.Nil(t, pref.Poller)
		}
	}
}
