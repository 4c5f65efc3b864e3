package coingecko

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tviana/cryptofolio"
	"github.com/tviana/cryptofolio/timeseries"
)

// intradayTTL caches spot prices for a few minutes, historicalTTL caches
// day-range charts for a day, matching how often the API refreshes them.
const (
	intradayTTL   = 5 * time.Minute
	historicalTTL = 24 * time.Hour
)

// query assembles an API address with the key attached when there is one.
func (c *Client) query(path string, params url.Values) string {
	if c.APIKey != "" {
		params.Set("x_cg_demo_api_key", c.APIKey)
	}
	return c.base() + path + "?" + params.Encode()
}

// CurrentPrices returns the current price of every requested asset in the
// given quote currency.
//
// The snapshot contains exactly what the API served; an asset the API does
// not know is simply absent, and the valuation's SetPrices will report it as
// a MissingPriceError.
func (c *Client) CurrentPrices(assets []string, quote string) (cryptofolio.PriceSnapshot, error) {
	if len(assets) == 0 {
		return cryptofolio.PriceSnapshot{}, nil
	}
	addr := c.query("/simple/price", url.Values{
		"ids":           {strings.Join(assets, ",")},
		"vs_currencies": {quote},
	})

	// payload: {"bitcoin": {"usd": 61163.0}, ...}
	content := make(map[string]map[string]decimal.Decimal)
	if err := jwget(newCachingClient(intradayTTL), addr, &content); err != nil {
		return nil, fmt.Errorf("could not fetch current prices: %w", err)
	}

	snapshot := make(cryptofolio.PriceSnapshot, len(content))
	for asset, quotes := range content {
		price, ok := quotes[quote]
		if !ok {
			continue // the API knows the asset but not in that quote
		}
		snapshot[asset] = price.InexactFloat64()
	}
	return snapshot, nil
}

// HistoricalPrices returns the price samples of one asset over the last
// 'days' days, in chronological order.
//
// The API chooses the granularity from the day range (5-minute samples for
// one day, hourly up to 90 days, daily beyond); the caller aligns whatever
// comes back.
func (c *Client) HistoricalPrices(asset, quote string, days int) (timeseries.Series, error) {
	addr := c.query(fmt.Sprintf("/coins/%s/market_chart", url.PathEscape(asset)), url.Values{
		"vs_currency": {quote},
		"days":        {fmt.Sprint(days)},
	})

	// payload: {"prices": [[1712000000000, 61163.0], ...], ...}
	var content struct {
		Prices [][2]decimal.Decimal `json:"prices"`
	}
	if err := jwget(newCachingClient(historicalTTL), addr, &content); err != nil {
		return timeseries.Series{}, fmt.Errorf("could not fetch %d days of %q prices: %w", days, asset, err)
	}

	var series timeseries.Series
	for _, sample := range content.Prices {
		ms := sample[0].IntPart()
		series.Append(time.UnixMilli(ms).UTC(), sample[1].InexactFloat64())
	}
	return series, nil
}

// HistoricalTable fetches the history of every asset and aligns it into a
// windowed table per the day-range policy.
func (c *Client) HistoricalTable(assets []string, quote string, days int, now time.Time) (*cryptofolio.Table, error) {
	samples := make(map[string]timeseries.Series, len(assets))
	for _, asset := range assets {
		series, err := c.HistoricalPrices(asset, quote, days)
		if err != nil {
			return nil, err
		}
		samples[asset] = series
	}
	return cryptofolio.BuildTable(samples, cryptofolio.WindowSize(days), now)
}
