package models

// Market identifies what a run trades: OKX spot instrument and candle bar.
type Market struct {
	Coin       string
	StableCoin string
	InstID     string // e.g. BTC-USDT
	Bar        string // OKX bar, e.g. 5m, 1H
}
