package telegram

import (
	tele "gopkg.in/telebot.v3"

	"github.com/GregMSThompson/expat-financier/internal/dto"
)

// Markup converts reply actions to an inline keyboard, one row per action row.
func Markup(r dto.Reply) *tele.ReplyMarkup {
	if len(r.Actions) == 0 {
		return nil
	}
	rows := make([][]tele.InlineButton, 0, len(r.Actions))
	for _, row := range r.Actions {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, a := range row {
			buttons = append(buttons, tele.InlineButton{Text: a.Label, Data: a.Tag})
		}
		rows = append(rows, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// SendOptions are the options for sending r. Replies are plain text so
// user supplied names need no escaping.
func SendOptions(r dto.Reply) []interface{} {
	opts := []interface{}{tele.NoPreview}
	if m := Markup(r); m != nil {
		opts = append(opts, m)
	}
	return opts
}
