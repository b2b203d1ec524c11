package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"CoinSentinel/pkg/logger"
)

const slackAPIURL = "https://slack.com/api/chat.postMessage"

// SlackNotifier sends messages via the Slack chat.postMessage API.
type SlackNotifier struct {
	Token   string
	Channel string
	APIURL  string
	Client  *http.Client
}

// NewSlackNotifier creates a notifier posting to the given channel.
func NewSlackNotifier(token, channel string) *SlackNotifier {
	return &SlackNotifier{
		Token:   token,
		Channel: channel,
		APIURL:  slackAPIURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

// Send posts a message to the configured channel.
func (s *SlackNotifier) Send(text string) error {
	form := url.Values{}
	form.Set("channel", s.Channel)
	form.Set("text", text)

	req, err := http.NewRequest(http.MethodPost, s.APIURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	// Slack reports API-level failures with HTTP 200 and ok=false.
	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode slack response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("slack API error: %s", result.Error)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (s *SlackNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := s.Send(text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			logger.Warn("slack send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
