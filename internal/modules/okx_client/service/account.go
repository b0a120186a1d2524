package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"strat_bot/internal/models"
)

type balance struct {
	Details []struct {
		Ccy      string `json:"ccy"`
		AvailBal string `json:"availBal"`
	} `json:"details"`
}

// Balances returns the available balance per currency. Currencies the account
// does not hold are reported as 0.
func (c *Client) Balances(ctx context.Context, ccys ...string) (map[string]float64, error) {
	q := url.Values{}
	if len(ccys) > 0 {
		q.Set("ccy", strings.Join(ccys, ","))
	}
	data, err := call[balance](ctx, c, http.MethodGet, "/api/v5/account/balance", q, nil, true)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(ccys))
	for _, ccy := range ccys {
		out[ccy] = 0
	}
	for _, b := range data {
		for _, d := range b.Details {
			v, err := strconv.ParseFloat(d.AvailBal, 64)
			if err != nil {
				return nil, fmt.Errorf("balance %s: parse availBal %q: %w", d.Ccy, d.AvailBal, err)
			}
			out[d.Ccy] = v
		}
	}
	return out, nil
}

type orderAck struct {
	OrdID string `json:"ordId"`
	SCode string `json:"sCode"`
	SMsg  string `json:"sMsg"`
}

// PlaceMarketOrder sends a spot market order sized in the base currency and
// returns the exchange order id.
func (c *Client) PlaceMarketOrder(ctx context.Context, instID string, side models.Signal, size float64) (string, error) {
	var s string
	switch side {
	case models.SignalBuy:
		s = "buy"
	case models.SignalSell:
		s = "sell"
	default:
		return "", fmt.Errorf("PlaceMarketOrder: unsupported side %q", side)
	}
	if size <= 0 {
		return "", fmt.Errorf("PlaceMarketOrder: size <= 0")
	}

	body := map[string]string{
		"instId":  instID,
		"tdMode":  "cash",
		"side":    s,
		"ordType": "market",
		"tgtCcy":  "base_ccy",
		"sz":      strconv.FormatFloat(size, 'f', -1, 64),
	}

	data, err := call[orderAck](ctx, c, http.MethodPost, "/api/v5/trade/order", nil, body, true)
	if len(data) > 0 && data[0].SCode != "" && data[0].SCode != "0" {
		return "", fmt.Errorf("PlaceMarketOrder rejected: sCode=%s sMsg=%s", data[0].SCode, data[0].SMsg)
	}
	if err != nil {
		return "", err
	}
	if len(data) == 0 || data[0].OrdID == "" {
		return "", fmt.Errorf("PlaceMarketOrder: empty ordId")
	}
	return data[0].OrdID, nil
}
