package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/connectfour/internal/entity"
)

const defaultTimeout = 15 * time.Second

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrInvalidBaseURL   = errors.New("invalid base url")
)

// Client talks to the game service. The session cookie issued by the service is kept in a
// cookie jar, so one Client is one player.
type Client struct {
	logger  *slog.Logger
	baseURL *url.URL
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient uses a copy of httpClient. The copy gets the session jar when httpClient has none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(that *Client) {
		c := *httpClient
		if c.Jar == nil {
			c.Jar = that.http.Jar
		}
		that.http = &c
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(that *Client) {
		that.http.Timeout = timeout
	}
}

func New(logger *slog.Logger, baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client := &Client{
		logger:  logger.With("component", "client"),
		baseURL: parsed,
		http:    &http.Client{Jar: jar, Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Reset asks the service for a new game at the given difficulty.
func (that *Client) Reset(ctx context.Context, difficulty entity.Difficulty) error {
	query := url.Values{}
	query.Set("difficulty", string(difficulty))

	var resp entity.ResetResponse
	if err := that.do(ctx, http.MethodPost, "/reset", query, &resp); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return nil
}

// State fetches the current board.
func (that *Client) State(ctx context.Context) (*entity.GameStateResponse, error) {
	var resp entity.GameStateResponse
	if err := that.do(ctx, http.MethodGet, "/state", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	return &resp, nil
}

// Move submits a piece in col. A rejected move is not a Go error: it comes back in the
// response's Error field.
func (that *Client) Move(ctx context.Context, col int) (*entity.GameStateResponse, error) {
	var resp entity.GameStateResponse
	if err := that.do(ctx, http.MethodPost, "/move/"+strconv.Itoa(col), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	return &resp, nil
}

func (that *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	endpoint := that.baseURL.JoinPath(path)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := that.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	that.logger.Debug("service answered", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
