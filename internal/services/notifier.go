package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

const DefaultNotifyTimeout = 10 * time.Second

// sheetsNotifier pushes profile snapshots to a spreadsheet web app.
type sheetsNotifier struct {
	url    string
	client *http.Client
}

func NewSheetsNotifier(url string, timeout time.Duration) *sheetsNotifier {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &sheetsNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (n *sheetsNotifier) Notify(ctx context.Context, snap models.Snapshot) error {
	if n.url == "" {
		return nil
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errs.NewExternalServiceError("sheets", "failed to push profile snapshot", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewExternalServiceError("sheets",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), resp.StatusCode >= 500, nil)
	}
	return nil
}
