package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.okx.com"

type Config struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	Passphrase string
	Simulated  bool
	RateLimit  float64 // requests per second, 0 disables
	Timeout    time.Duration
}

// Client talks to the OKX v5 REST API.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	apiSecret string
	passph    string
	simulated bool
	limiter   *rate.Limiter
	now       func() time.Time
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	c := &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   base,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		passph:    cfg.Passphrase,
		simulated: cfg.Simulated,
		now:       time.Now,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// HasCredentials reports whether private endpoints can be called.
func (c *Client) HasCredentials() bool {
	return c.apiKey != "" && c.apiSecret != "" && c.passph != ""
}

func (c *Client) sign(ts, method, requestPath, body string) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(ts + method + requestPath + body))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

type response[T any] struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []T    `json:"data"`
}

// call sends one request and unwraps the {code,msg,data} envelope.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, private bool) ([]T, error) {
	if private && !c.HasCredentials() {
		return nil, fmt.Errorf("%s %s: okx credentials are not configured", method, path)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	requestPath := path
	if len(query) > 0 {
		requestPath += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s marshal: %w", path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s new request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if private {
		ts := c.now().UTC().Format("2006-01-02T15:04:05.000Z")
		req.Header.Set("OK-ACCESS-KEY", c.apiKey)
		req.Header.Set("OK-ACCESS-SIGN", c.sign(ts, method, requestPath, string(payload)))
		req.Header.Set("OK-ACCESS-TIMESTAMP", ts)
		req.Header.Set("OK-ACCESS-PASSPHRASE", c.passph)
	}
	if c.simulated {
		req.Header.Set("x-simulated-trading", "1")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s do: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", path, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%s http %d: %s", path, resp.StatusCode, string(data))
	}

	var r response[T]
	if err := sonic.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%s decode: %w; body=%s", path, err, string(data))
	}
	if r.Code != "0" {
		return r.Data, fmt.Errorf("%s error: code=%s msg=%s", path, r.Code, r.Msg)
	}
	return r.Data, nil
}
