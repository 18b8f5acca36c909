package taxfolio

// PooledGroup is the fixed set of asset symbols treated as one fungible pool
// for disposal-gain allocation. It is a configuration value injected into the
// disposal calculator, not global state.
type PooledGroup map[string]struct{}

// NewPooledGroup builds a pooled group from asset symbols.
func NewPooledGroup(symbols ...string) PooledGroup {
	g := make(PooledGroup, len(symbols))
	for _, s := range symbols {
		g[s] = struct{}{}
	}
	return g
}

// Contains reports whether the asset belongs to the pool.
func (g PooledGroup) Contains(asset string) bool {
	_, ok := g[asset]
	return ok
}

// SymbolResolver resolves a ledger asset symbol into the ticker used by the
// market data gateway.
type SymbolResolver interface {
	Resolve(asset string) (ticker string, ok bool)
}

// SymbolMap is a SymbolResolver backed by a plain mapping.
type SymbolMap map[string]string

func (m SymbolMap) Resolve(asset string) (string, bool) {
	ticker, ok := m[asset]
	return ticker, ok
}

// DefaultPooledGroup returns the crypto asset symbols pooled by default.
func DefaultPooledGroup() PooledGroup {
	return NewPooledGroup("SWQ", "ETH", "SOL", "DOT", "XRP", "XBT", "MKR", "AAV", "BNT", "MAT")
}

// DefaultSymbols returns the default asset-to-ticker mapping for the pooled
// crypto assets.
func DefaultSymbols() SymbolMap {
	return SymbolMap{
		"AAV": "AAVE-USD",
		"BNT": "BNT-USD",
		"DOT": "DOT-USD",
		"ETH": "ETH-USD",
		"MAT": "MATIC-USD",
		"MKR": "MKR-USD",
		"SOL": "SOL-USD",
		"XBT": "BTC-USD",
		"XRP": "XRP-USD",
	}
}
