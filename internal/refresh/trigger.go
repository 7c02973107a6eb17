package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cloneboot/cloneboot/internal/config"
)

const defaultTriggerTimeout = 30 * time.Second

// TriggerDownstream submits the follow-on pipeline job after a successful
// refresh. Fire and forget: the caller reports a returned error as a
// warning, since the refresh itself has already succeeded by the time this
// runs. A nil client gets a default with a request timeout.
func TriggerDownstream(ctx context.Context, client *http.Client, cfg config.DownstreamConfig, obs Observer) error {
	if cfg.URL == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTriggerTimeout}
	}

	body, err := json.Marshal(map[string]string{"job": cfg.Job})
	if err != nil {
		return fmt.Errorf("encoding trigger payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submitting downstream job: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("trigger endpoint returned %s", resp.Status)
	}

	obs.Printf("Downstream job %q triggered", cfg.Job)
	return nil
}
