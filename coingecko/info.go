package coingecko

import (
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// CoinInfo is the handful of descriptive fields the reports care about,
// plucked out of the very large /coins/{id} payload.
type CoinInfo struct {
	ID         string
	Symbol     string
	Name       string
	MarketRank int
}

// CoinInfo fetches the descriptive record of one asset.
func (c *Client) CoinInfo(asset string) (CoinInfo, error) {
	addr := c.query("/coins/"+url.PathEscape(asset), url.Values{
		"localization":   {"false"},
		"tickers":        {"false"},
		"market_data":    {"false"},
		"community_data": {"false"},
		"developer_data": {"false"},
	})

	// The payload is huge and mostly irrelevant; keep it untyped and pluck
	// the few fields we need with jsonpath.
	var jobj any
	if err := jwget(newCachingClient(historicalTTL), addr, &jobj); err != nil {
		return CoinInfo{}, fmt.Errorf("could not fetch info for %q: %w", asset, err)
	}

	info := CoinInfo{ID: asset}
	if v, err := jsonpath.Get("$.symbol", jobj); err == nil {
		info.Symbol, _ = v.(string)
	}
	if v, err := jsonpath.Get("$.name", jobj); err == nil {
		info.Name, _ = v.(string)
	}
	if v, err := jsonpath.Get("$.market_cap_rank", jobj); err == nil {
		// json numbers decode as float64
		if rank, ok := v.(float64); ok {
			info.MarketRank = int(rank)
		}
	}
	if info.Name == "" {
		return CoinInfo{}, fmt.Errorf("no usable info for %q", asset)
	}
	return info, nil
}
