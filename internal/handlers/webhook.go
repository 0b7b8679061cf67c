package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	tele "gopkg.in/telebot.v3"

	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/response"
	"github.com/GregMSThompson/expat-financier/pkg/logger"
)

// SecretTokenHeader carries the secret registered with setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type updateProcessor interface {
	ProcessUpdate(u tele.Update)
}

type webhookHandlers struct {
	ResponseHandler response.ResponseHandler
	Bot             updateProcessor
	Secret          string
}

func NewWebhookHandlers(deps *Deps) *webhookHandlers {
	return &webhookHandlers{
		ResponseHandler: deps.ResponseHandler,
		Bot:             deps.Bot,
		Secret:          deps.WebhookSecret,
	}
}

func (h *webhookHandlers) WebhookRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ReceiveUpdate)
	return r
}

func (h *webhookHandlers) ReceiveUpdate(w http.ResponseWriter, r *http.Request) {
	if h.Secret != "" {
		got := r.Header.Get(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.Secret)) != 1 {
			logger.FromContext(r.Context()).Warn("webhook secret mismatch")
			h.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid secret token")
			return
		}
	}

	var u tele.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid update payload"))
		return
	}

	logger.FromContext(r.Context()).Debug("update received", "update_id", u.ID)
	h.Bot.ProcessUpdate(u)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
