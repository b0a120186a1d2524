package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"strat_bot/internal/models"
)

// MaxCandleLimit is the page size cap of /market/candles.
const MaxCandleLimit = 300

// CandleRows returns raw OKX rows [ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm],
// newest first as the exchange sends them.
func (c *Client) CandleRows(ctx context.Context, instID, bar string, limit int) ([][]string, error) {
	if limit <= 0 || limit > MaxCandleLimit {
		limit = MaxCandleLimit
	}
	q := url.Values{}
	q.Set("instId", instID)
	q.Set("bar", bar)
	q.Set("limit", strconv.Itoa(limit))

	rows, err := call[[]string](ctx, c, http.MethodGet, "/api/v5/market/candles", q, nil, false)
	if err != nil {
		return nil, fmt.Errorf("okx candles %s %s: %w", instID, bar, err)
	}
	return rows, nil
}

type instrument struct {
	InstID string `json:"instId"`
	TickSz string `json:"tickSz"`
	LotSz  string `json:"lotSz"`
	MinSz  string `json:"minSz"`
	State  string `json:"state"`
}

// Instrument returns lot/tick sizes of a spot instrument.
func (c *Client) Instrument(ctx context.Context, instID string) (models.Instrument, error) {
	q := url.Values{}
	q.Set("instType", "SPOT")
	q.Set("instId", instID)

	data, err := call[instrument](ctx, c, http.MethodGet, "/api/v5/public/instruments", q, nil, false)
	if err != nil {
		return models.Instrument{}, err
	}
	if len(data) == 0 {
		return models.Instrument{}, fmt.Errorf("instrument %s not found", instID)
	}

	inst := data[0]
	if inst.State != "" && inst.State != "live" {
		return models.Instrument{}, fmt.Errorf("instrument %s not live: state=%s", instID, inst.State)
	}

	parsePos := func(name, s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("%s parse: %v (%q)", name, err, s)
		}
		return v, nil
	}
	lotSz, err := parsePos("lotSz", inst.LotSz)
	if err != nil {
		return models.Instrument{}, err
	}
	minSz, err := parsePos("minSz", inst.MinSz)
	if err != nil {
		return models.Instrument{}, err
	}
	tickSz, err := parsePos("tickSz", inst.TickSz)
	if err != nil {
		return models.Instrument{}, err
	}

	return models.Instrument{
		InstID: inst.InstID,
		LotSz:  lotSz,
		MinSz:  minSz,
		TickSz: tickSz,
	}, nil
}
