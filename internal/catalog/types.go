package catalog

// StoreDocument is the canonical per-store document shape. Field content
// beyond the top-level structure is client-owned and passed through as-is.
type StoreDocument struct {
	StoreName string                               `json:"store_name"`
	Inventory map[string][]map[string]any          `json:"inventory"`
	Recipes   map[string]map[string]map[string]any `json:"recipes"`
	Memo      string                               `json:"memo"`
	Ledger    []map[string]any                     `json:"ledger"`
}

// Catalog is the full on-disk document set: the registered store names,
// one document per registered store, and the timestamp of the last write.
type Catalog struct {
	Stores   []string                 `json:"stores"`
	ByStore  map[string]StoreDocument `json:"by_store"`
	LastSync string                   `json:"last_sync"`
}

// DefaultStore returns an empty document carrying the given name.
func DefaultStore(name string) StoreDocument {
	return StoreDocument{
		StoreName: name,
		Inventory: map[string][]map[string]any{},
		Recipes:   map[string]map[string]map[string]any{},
		Memo:      "",
		Ledger:    []map[string]any{},
	}
}

// DefaultCatalog returns an empty catalogue with no registered stores.
func DefaultCatalog() Catalog {
	return Catalog{
		Stores:   []string{},
		ByStore:  map[string]StoreDocument{},
		LastSync: "",
	}
}
