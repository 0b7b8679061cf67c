package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/expat-financier/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Bot             updateProcessor
	WebhookSecret   string
}
