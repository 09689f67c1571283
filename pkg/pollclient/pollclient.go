// Package pollclient implements the client side of the two-phase assessment
// flow: submit the intake, then poll for the report until it exists or the
// attempt budget runs out.
package pollclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StatePolling
	StateReady
	StateTimedOut
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StatePolling:
		return "polling"
	case StateReady:
		return "ready"
	case StateTimedOut:
		return "timed_out"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ResearchRequest mirrors the intake body.
type ResearchRequest struct {
	Role        string             `json:"role"`
	Tasks       map[string]float64 `json:"tasks,omitempty"`
	Resume      string             `json:"resume,omitempty"`
	LinkedInURL string             `json:"linkedinUrl,omitempty"`
	ProfileData json.RawMessage    `json:"profileData,omitempty"`
}

// Report is the polled result.
type Report struct {
	ID         string          `json:"id"`
	ProfileID  string          `json:"profile_id"`
	Score      int             `json:"score"`
	Preview    string          `json:"preview"`
	FullReport string          `json:"full_report"`
	Evidence   json.RawMessage `json:"evidence"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Result is the terminal outcome of one Run.
type Result struct {
	State     State
	ProfileID string
	Report    *Report
	// Message distinguishes "still processing, check back later" from a
	// hard failure when State is TimedOut or Failed.
	Message string
}

type Client struct {
	http *resty.Client

	// InitialDelay is waited once after a successful submit before the
	// first poll; Interval separates polls; MaxAttempts bounds them.
	InitialDelay time.Duration
	Interval     time.Duration
	MaxAttempts  int

	state State
}

type Option func(*Client)

func WithTiming(initialDelay, interval time.Duration, maxAttempts int) Option {
	return func(c *Client) {
		c.InitialDelay = initialDelay
		c.Interval = interval
		c.MaxAttempts = maxAttempts
	}
}

func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.http.SetAuthToken(token)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:         resty.New().SetBaseURL(baseURL),
		InitialDelay: 5 * time.Second,
		Interval:     2 * time.Second,
		MaxAttempts:  180,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the machine's current state.
func (c *Client) State() State { return c.state }

// Run drives the whole flow: submit, wait, poll. It always returns a
// terminal Result; the error is non-nil only for Failed.
func (c *Client) Run(ctx context.Context, req ResearchRequest) (*Result, error) {
	c.state = StateSubmitting

	profileID, err := c.submit(ctx, req)
	if err != nil {
		c.state = StateFailed
		return &Result{State: StateFailed, Message: err.Error()}, err
	}

	if err := sleep(ctx, c.InitialDelay); err != nil {
		c.state = StateFailed
		return &Result{State: StateFailed, ProfileID: profileID, Message: err.Error()}, err
	}

	c.state = StatePolling
	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.Interval); err != nil {
				c.state = StateFailed
				return &Result{State: StateFailed, ProfileID: profileID, Message: err.Error()}, err
			}
		}

		report, ready := c.poll(ctx, profileID)
		if ready {
			c.state = StateReady
			return &Result{State: StateReady, ProfileID: profileID, Report: report}, nil
		}
	}

	c.state = StateTimedOut
	return &Result{
		State:     StateTimedOut,
		ProfileID: profileID,
		Message:   "your report is still being generated; check back later",
	}, nil
}

func (c *Client) submit(ctx context.Context, req ResearchRequest) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/research")
	if err != nil {
		return "", fmt.Errorf("submit failed: %w", err)
	}
	if resp.IsError() {
		message := gjson.GetBytes(resp.Body(), "message").String()
		if message == "" {
			message = resp.Status()
		}
		return "", fmt.Errorf("submit rejected: %s", message)
	}

	profileID := gjson.GetBytes(resp.Body(), "data.profile_id").String()
	if profileID == "" {
		return "", fmt.Errorf("submit response has no profile id")
	}
	return profileID, nil
}

// poll fetches the report once. 404 means not ready yet; any other failure
// is also treated as not-ready so a transient error never kills the loop.
func (c *Client) poll(ctx context.Context, profileID string) (*Report, bool) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/reports/" + profileID)
	if err != nil || resp.StatusCode() == http.StatusNotFound {
		return nil, false
	}
	if resp.IsError() {
		return nil, false
	}

	var report Report
	data := gjson.GetBytes(resp.Body(), "data")
	if !data.Exists() {
		return nil, false
	}
	if err := json.Unmarshal([]byte(data.Raw), &report); err != nil {
		return nil, false
	}
	if report.ID == "" {
		return nil, false
	}
	return &report, true
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
