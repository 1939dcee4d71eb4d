// Package flowapi talks to the training service over its web API: one
// form login establishing a session cookie, a calendar listing and the
// per-session export download. All calls reuse a single http.Client
// whose cookie jar carries the authenticated session.
package flowapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/jgivc/flowexport/internal/common"
	"github.com/jgivc/flowexport/internal/entity"
)

const (
	loginPath    = "/login"
	calendarPath = "/training/getCalendarEvents"
	exportPath   = "/api/export/training"
)

type Client struct {
	hc        *http.Client
	baseURL   string
	userAgent string
	log       *slog.Logger
}

func New(baseURL, userAgent string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create cookie jar: %w", err)
	}

	return &Client{
		hc: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		log:       log.With(slog.String("item", "FlowClient")),
	}, nil
}

// Login posts the credentials form. On a 200 the service sets the session
// cookie in the client's jar; every later call rides on that cookie. Any
// other status means the credentials were rejected.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("returnUrl", "/")
	form.Set("email", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("cannot create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("cannot login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("Login rejected", slog.Int("status", resp.StatusCode))

		return common.ErrInvalidCredentials
	}

	return nil
}

// Sessions lists the calendar events between start and end inclusive.
// Events missing duration, calories or distance decode to zero values;
// that is normal for non-exercise entries.
func (c *Client) Sessions(ctx context.Context, start, end time.Time) ([]entity.Session, error) {
	uri := fmt.Sprintf("%s%s?start=%s&end=%s", c.baseURL, calendarPath,
		queryDate(start), queryDate(end))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create calendar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot get calendar events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar events: %w: %s", common.ErrUnexpectedStatus, resp.Status)
	}

	var sessions []entity.Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("cannot decode calendar events: %w", err)
	}

	c.log.Debug("Got calendar events", slog.Int("count", len(sessions)))

	return sessions, nil
}

// Export requests the session payload in the given format and returns the
// raw body stream plus the reported content length (-1 when unknown). The
// caller owns the returned reader and must close it.
func (c *Client) Export(ctx context.Context, format entity.ExportFormat, listItemID uint64) (io.ReadCloser, int64, error) {
	uri := fmt.Sprintf("%s%s/%s/%d", c.baseURL, exportPath, format, listItemID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot create export request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot download session %d: %w", listItemID, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()

		return nil, 0, fmt.Errorf("download session %d: %w: %s",
			listItemID, common.ErrUnexpectedStatus, resp.Status)
	}

	return resp.Body, resp.ContentLength, nil
}

// queryDate renders a day as D.M.YYYY without zero-padding, the only
// range format the calendar endpoint accepts.
func queryDate(t time.Time) string {
	return fmt.Sprintf("%d.%d.%d", t.Day(), int(t.Month()), t.Year())
}
