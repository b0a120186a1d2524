package service

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"strat_bot/internal/models"
)

// CandleTick is a confirmed candle of one instrument.
type CandleTick struct {
	InstID string
	Candle models.Candle
}

type candleFrame struct {
	Arg struct {
		Channel string `json:"channel"`
		InstID  string `json:"instId"`
	} `json:"arg"`
	Event string     `json:"event"`
	Code  string     `json:"code"`
	Msg   string     `json:"msg"`
	Data  [][]string `json:"data"`
}

// StreamCandlesBatch keeps one websocket per bar subscribed to all instIDs and
// emits only confirmed candles. It reconnects until ctx is done, then closes the channel.
func (c *Client) StreamCandlesBatch(ctx context.Context, instIDs []string, bar string) <-chan CandleTick {
	ch := make(chan CandleTick)

	go func() {
		defer close(ch)
		defer c.setConnected(false)

		if len(instIDs) == 0 {
			return
		}

		channel := "candle" + bar // "5m" -> "candle5m"
		args := make([]map[string]string, 0, len(instIDs))
		for _, id := range instIDs {
			args = append(args, map[string]string{
				"channel": channel,
				"instId":  id,
			})
		}

		for {
			if err := c.session(ctx, channel, args, ch); err != nil {
				log.Printf("[WS] %s: %v", channel, err)
			}
			c.setConnected(false)

			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoff):
			}
		}
	}()

	return ch
}

// session runs one connection until it fails or ctx is done.
func (c *Client) session(ctx context.Context, channel string, args []map[string]string, out chan<- CandleTick) error {
	log.Printf("[WS] connect %s %d symbols", channel, len(args))
	conn, _, err := c.wsDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"op": "subscribe", "args": args}); err != nil {
		return err
	}
	c.setConnected(true)

	// OKX drops idle connections after 30s; ping keeps them open
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		t := time.NewTicker(c.pingEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
				_ = conn.Close()
				return
			case <-stop:
				return
			case <-t.C:
				_ = conn.WriteMessage(websocket.TextMessage, []byte("ping"))
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if string(msg) == "pong" {
			continue
		}

		var frame candleFrame
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Event == "error" {
			log.Printf("[WS] %s error %s: %s", channel, frame.Code, frame.Msg)
			continue
		}
		if frame.Arg.Channel != channel || len(frame.Data) == 0 {
			continue
		}

		for _, row := range frame.Data {
			candle, confirmed, err := models.ParseCandleRow(row)
			if err != nil || !confirmed {
				continue
			}
			c.touch()
			select {
			case out <- CandleTick{InstID: frame.Arg.InstID, Candle: candle}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
