package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avashisht/grind/internal/challenge"
	"github.com/avashisht/grind/internal/model"
)

const DefaultTimeout = 15 * time.Second

// Config describes the backend the client talks to.
type Config struct {
	BaseURL string
	UserID  string
	Timeout time.Duration
}

// Client consumes the challenge backend: one progress read, one task-toggle
// write. It implements challenge.Loader.
type Client struct {
	hc      http.Client
	baseURL string
	userID  string
	logger  *log.Logger
}

func NewClient(cfg Config, logger *log.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api: base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("api: invalid base url %q: %w", cfg.BaseURL, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		hc:      http.Client{Timeout: timeout},
		baseURL: base,
		userID:  strings.TrimSpace(cfg.UserID),
		logger:  logger,
	}, nil
}

type progressResponse struct {
	Today    *model.DailyLog        `json:"today"`
	Progress *model.ProgressSummary `json:"progress"`
}

// FetchProgress reads today's log and the aggregated summary in one call.
// Failures come back as *FetchError.
func (c *Client) FetchProgress(ctx context.Context) (challenge.RemoteState, error) {
	endpoint := c.baseURL + "/progress"
	if c.userID != "" {
		endpoint += "?user=" + url.QueryEscape(c.userID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return challenge.RemoteState{}, &FetchError{err: err}
	}

	started := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("progress fetch failed")
		return challenge.RemoteState{}, &FetchError{err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := statusError(resp)
		c.logger.WithField("status", resp.StatusCode).Warn("progress fetch rejected")
		return challenge.RemoteState{}, &FetchError{err: err}
	}

	var payload progressResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return challenge.RemoteState{}, &FetchError{err: fmt.Errorf("decode progress: %w", err)}
	}
	c.logger.WithFields(log.Fields{
		"elapsed":  time.Since(started).Round(time.Millisecond).String(),
		"hasToday": payload.Today != nil,
	}).Debug("progress fetched")
	return challenge.RemoteState{Today: payload.Today, Progress: payload.Progress}, nil
}

// ToggleRequest is the task-toggle write body. Value and Note ride along only
// on the explicit save path; the quick toggle leaves them nil.
type ToggleRequest struct {
	Task      string  `json:"task"`
	Completed bool    `json:"completed"`
	Value     *string `json:"value,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// ToggleTask writes one task mutation and returns the server's authoritative
// daily log. Cancellation of ctx aborts the call; genuine failures come back
// as *MutationError.
func (c *Client) ToggleTask(ctx context.Context, in ToggleRequest) (model.DailyLog, error) {
	if !model.KnownTask(in.Task) {
		return model.DailyLog{}, &MutationError{Task: in.Task, err: fmt.Errorf("%w: %q", model.ErrUnknownTask, in.Task)}
	}
	body, err := json.Marshal(in)
	if err != nil {
		return model.DailyLog{}, &MutationError{Task: in.Task, err: err}
	}
	endpoint := c.baseURL + "/task-toggle"
	if c.userID != "" {
		endpoint += "?user=" + url.QueryEscape(c.userID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.DailyLog{}, &MutationError{Task: in.Task, err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("task", in.Task).Warn("task toggle failed")
		return model.DailyLog{}, &MutationError{Task: in.Task, err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := statusError(resp)
		c.logger.WithFields(log.Fields{"task": in.Task, "status": resp.StatusCode}).Warn("task toggle rejected")
		return model.DailyLog{}, &MutationError{Task: in.Task, err: err}
	}

	var updated model.DailyLog
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return model.DailyLog{}, &MutationError{Task: in.Task, err: fmt.Errorf("decode daily log: %w", err)}
	}
	return updated, nil
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	trimmed := strings.TrimSpace(string(snippet))
	if trimmed == "" {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, trimmed)
}
