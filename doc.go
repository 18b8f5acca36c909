// Package taxfolio computes holdings, acquisition cost basis, and tax-year
// disposal gains from a personal investment transaction ledger.
//
// The core functionalities include:
//   - Ledger Management: An immutable, chronologically ordered record of
//     executed buy and sell orders, with filtering views by activity, asset,
//     side, and date range.
//   - Cost Basis: Per asset and currency accumulation of acquisition costs,
//     quantities and fees, with average-cost queries at any point in the
//     ledger's history.
//   - Disposal Gains: For every sell in a given tax year, the realized gain
//     computed either from the asset's own average cost, or, for a configured
//     pooled group of fungible assets (typically crypto), by proportional
//     allocation of the pooled acquisition cost against the pool's market
//     value at the time of disposal.
//   - Market Data: In-memory exchange-rate and price tables with sorted daily
//     histories, persisted in a human-readable JSONL format, acting as the
//     rate and price gateways consumed by the valuation and disposal engines.
//   - Ingestion: Parsing of broker CSV exports into ledger records.
//
// This package serves as the foundational logic for the `tfx` command-line
// tool, ensuring that all reports are consistent and based on a single
// source of truth.
package taxfolio
