// Package rest fetches entities from the hotel backend's REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

const (
	pathReservations = "/reservations"
	pathRooms        = "/rooms"
	pathTasks        = "/housekeeping/tasks"
	pathPayments     = "/payments"
	pathLogin        = "/auth/login"

	maxBodyBytes = 16 << 20
)

// collection keys accepted under {"data": {...}}.
var collectionKeys = []string{"items", "results", "records", "reservations", "rooms", "tasks", "payments", "list"}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	loc     *time.Location
}

type Options struct {
	BaseURL  string
	Timeout  time.Duration
	RPS      float64
	Location *time.Location
	// HTTPClient overrides the default transport. Timeout is still applied when it has none.
	HTTPClient *http.Client
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if hc.Timeout == 0 {
		hc.Timeout = opts.Timeout
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	burst := int(opts.RPS)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(opts.RPS), burst),
		loc:     loc,
	}
}

func (c *Client) ListReservations(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.Reservation, error) {
	records, err := c.list(ctx, sess, pathReservations, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(records))
	for _, r := range records {
		res := normalizeReservation(r, c.loc)
		for _, w := range res.Validate() {
			log.Debug().Str("reservation", res.ReservationNumber).Msg(w)
		}
		out = append(out, res)
	}
	return out, nil
}

func (c *Client) ListRooms(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.Room, error) {
	records, err := c.list(ctx, sess, pathRooms, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeRoom(r))
	}
	return out, nil
}

func (c *Client) ListTasks(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.HousekeepingTask, error) {
	records, err := c.list(ctx, sess, pathTasks, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HousekeepingTask, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeTask(r, c.loc))
	}
	return out, nil
}

func (c *Client) ListPayments(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.Payment, error) {
	records, err := c.list(ctx, sess, pathPayments, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(records))
	for _, r := range records {
		out = append(out, normalizePayment(r, c.loc))
	}
	return out, nil
}

// LoginResult is what the backend hands back for valid staff credentials.
type LoginResult struct {
	Token    string
	UserID   string
	Username string
	Role     string
}

// Login exchanges staff credentials for an upstream bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, err
	}
	payload, err := c.do(ctx, http.MethodPost, pathLogin, nil, "", body)
	if err != nil {
		return nil, err
	}

	root, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("login: unexpected response shape: %w", source.ErrUpstream)
	}
	rec := record(root)
	if data, ok := rec.obj("data"); ok {
		rec = data
	}

	res := &LoginResult{
		Token:    rec.str("token", "access_token", "accessToken"),
		UserID:   rec.str("user_id"),
		Username: username,
		Role:     rec.str("role"),
	}
	if user, ok := rec.obj("user"); ok {
		if res.UserID == "" {
			res.UserID = user.str("id")
		}
		if u := user.str("username"); u != "" {
			res.Username = u
		}
		if res.Role == "" {
			res.Role = user.str("role")
		}
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login: no token in response: %w", source.ErrUpstream)
	}
	return res, nil
}

func (c *Client) list(ctx context.Context, sess *session.Session, path string, f source.Filter) ([]record, error) {
	token := ""
	if sess != nil {
		token = sess.UpstreamToken
	}
	payload, err := c.do(ctx, http.MethodGet, path, filterQuery(f), token, nil)
	if err != nil {
		return nil, err
	}
	items, err := unwrap(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body []byte) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s %s: rate limiter: %w", method, path, err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %v: %w", method, path, err, source.ErrUpstream)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s %s: %w", method, path, source.ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, source.ErrUpstream)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s %s: decode: %v: %w", method, path, err, source.ErrUpstream)
	}
	return payload, nil
}

// unwrap accepts [...], {"data": [...]}, {"data": {"<collection>": [...]}} and {"<collection>": [...]}.
func unwrap(payload any) ([]record, error) {
	switch v := payload.(type) {
	case nil:
		return []record{}, nil
	case []any:
		return toRecords(v), nil
	case map[string]any:
		if ok, present := v["success"].(bool); present && !ok {
			return nil, fmt.Errorf("backend reported failure: %w", source.ErrUpstream)
		}
		if data, ok := v["data"]; ok {
			if data == nil {
				return []record{}, nil
			}
			return unwrap(data)
		}
		for _, k := range collectionKeys {
			if arr, ok := v[k].([]any); ok {
				return toRecords(arr), nil
			}
		}
	}
	return nil, fmt.Errorf("unrecognized response envelope: %w", source.ErrUpstream)
}

func toRecords(arr []any) []record {
	out := make([]record, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, record(m))
		}
	}
	return out
}

func filterQuery(f source.Filter) url.Values {
	q := url.Values{}
	if !f.From.IsZero() {
		q.Set("from_date", f.From.Format(time.DateOnly))
	}
	if !f.To.IsZero() {
		q.Set("to_date", f.To.Format(time.DateOnly))
	}
	if len(f.Statuses) > 0 {
		q.Set("status", strings.Join(f.Statuses, ","))
	}
	if f.Department != "" {
		q.Set("department", f.Department)
	}
	return q
}
