// Package cryptofolio values a set of crypto asset holdings against live or
// historical market prices, watches per-asset boundary conditions, and
// simulates rule-based rebalancing strategies against price history.
//
// The core building blocks are:
//   - Valuation: derives prices, values and percentage-of-portfolio from raw
//     holdings and a price snapshot, cached and sorted by descending value.
//   - Monitor: tracks boundary conditions per (asset, metric, side) and which
//     of them the current valuation triggers.
//   - Table: aligns irregular per-asset price samples into a uniform
//     time-windowed table, optionally normalized to each asset's first price.
//   - Simulator: replays a table through a pluggable Strategy, mutating the
//     holdings step by step and restoring them on every exit path.
//
// Fetching prices is delegated to the coingecko subpackage; rendering reports
// to the renderer subpackage. The `cfol` command-line tool wires them
// together.
package cryptofolio
