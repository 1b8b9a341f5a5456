// Package remote is the typed client for the Tunza backend API. The backend
// owns authentication, seeding, and scheduling; this client only consumes
// resolved values.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tunza-app/tunza/internal/config"
)

// Client talks to the backend API over HTTP with bearer authentication.
// Construct with NewClient; the zero value is not usable.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient returns a Client with configured timeouts.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var u User
	err := c.getJSON(ctx, config.RouteCurrentUser, nil, &u)
	return u, err
}

// Babies fetches the child profiles attached to the account.
func (c *Client) Babies(ctx context.Context) ([]Baby, error) {
	var babies []Baby
	err := c.getJSON(ctx, config.RouteBabies, nil, &babies)
	return babies, err
}

// Reminders fetches the server-side reminders.
func (c *Client) Reminders(ctx context.Context) ([]Reminder, error) {
	var reminders []Reminder
	err := c.getJSON(ctx, config.RouteReminders, nil, &reminders)
	return reminders, err
}

// DailyTip fetches today's guidance message.
func (c *Client) DailyTip(ctx context.Context) (Tip, error) {
	var tip Tip
	err := c.getJSON(ctx, config.RouteDailyTip, nil, &tip)
	return tip, err
}

// Vaccines fetches the immunization catalog for the given recipient
// ("baby" or "mother").
func (c *Client) Vaccines(ctx context.Context, recipient string) ([]Vaccine, error) {
	query := url.Values{}
	query.Set(config.QueryKeyRecipient, recipient)

	var vaccines []Vaccine
	err := c.getJSON(ctx, config.RouteVaccines, query, &vaccines)
	return vaccines, err
}

// SplitVaccines separates a mother catalog into recommended-during-pregnancy
// and avoid-during-pregnancy groups. A warning emoji or an unset recommended
// flag lands the entry in the avoid group.
func SplitVaccines(vaccines []Vaccine) (recommended, avoid []Vaccine) {
	for _, v := range vaccines {
		if v.Recommended && v.Emoji != config.VaccineAvoidMark {
			recommended = append(recommended, v)
		} else {
			avoid = append(avoid, v)
		}
	}
	return recommended, avoid
}

// getJSON performs an authenticated GET and decodes the JSON response into out.
// The URL is validated and sanitized before logging to avoid leaking tokens.
func (c *Client) getJSON(ctx context.Context, route string, query url.Values, out any) error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s", config.ErrBaseURLEmpty)
	}

	u, err := url.Parse(c.BaseURL + route)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	safeURL := u.Scheme + "://" + u.Host + u.Path
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompRemote),
		slog.String(config.LogKeyURL, safeURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	if c.Token != "" {
		req.Header.Set(config.HeaderAuth, config.BearerPrefix+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("network error during fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Bound the read to protect against a misbehaving server.
	limited := io.LimitReader(resp.Body, config.MaxHTTPResponseSize)
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDecodeResponse, err)
	}
	return nil
}
