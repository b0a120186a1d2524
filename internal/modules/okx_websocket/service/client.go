package service

import (
	"time"

	"github.com/gorilla/websocket"
)

const defaultWSURL = "wss://ws.okx.com:8443/ws/v5/business"

// ConnListener is told when the stream connects and drops, and when a candle arrives.
type ConnListener interface {
	SetWSConnected(v bool)
	TouchTick(t time.Time)
}

type Client struct {
	url      string
	wsDialer *websocket.Dialer
	listener ConnListener

	pingEvery time.Duration
	backoff   time.Duration
}

func NewClient(url string, listener ConnListener) *Client {
	if url == "" {
		url = defaultWSURL
	}
	return &Client{
		url:       url,
		wsDialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		listener:  listener,
		pingEvery: 20 * time.Second,
		backoff:   time.Second,
	}
}

func (c *Client) setConnected(v bool) {
	if c.listener != nil {
		c.listener.SetWSConnected(v)
	}
}

func (c *Client) touch() {
	if c.listener != nil {
		c.listener.TouchTick(time.Now())
	}
}
