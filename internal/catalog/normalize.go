package catalog

// Normalisation coerces arbitrary decoded JSON into the canonical
// catalogue shapes. It is total: any input, including nil, scalars and
// wrongly-typed fields, produces a valid result. Unknown keys are
// dropped, missing or mistyped fields fall back to their defaults, and
// well-formed content passes through unchanged.

// NormalizeStore coerces raw into a StoreDocument. fallbackName is used
// when the document carries no usable store_name of its own.
func NormalizeStore(raw any, fallbackName string) StoreDocument {
	doc := DefaultStore(fallbackName)

	m, ok := raw.(map[string]any)
	if !ok {
		return doc
	}

	if name, ok := m["store_name"].(string); ok && name != "" {
		doc.StoreName = name
	}
	if memo, ok := m["memo"].(string); ok {
		doc.Memo = memo
	}
	doc.Inventory = normalizeInventory(m["inventory"])
	doc.Recipes = normalizeRecipes(m["recipes"])
	doc.Ledger = normalizeEntryList(m["ledger"])

	return doc
}

// NormalizeCatalog coerces raw into a Catalog. Store names are
// deduplicated preserving first-seen order, and every registered name is
// guaranteed a document in ByStore.
func NormalizeCatalog(raw any) Catalog {
	cat := DefaultCatalog()

	m, ok := raw.(map[string]any)
	if !ok {
		return cat
	}

	if last, ok := m["last_sync"].(string); ok {
		cat.LastSync = last
	}

	byStore, _ := m["by_store"].(map[string]any) // nil map reads fine below

	seen := map[string]bool{}
	if names, ok := m["stores"].([]any); ok {
		for _, n := range names {
			name, ok := n.(string)
			if !ok || name == "" || seen[name] {
				continue
			}
			seen[name] = true
			cat.Stores = append(cat.Stores, name)
		}
	}

	for _, name := range cat.Stores {
		cat.ByStore[name] = NormalizeStore(byStore[name], name)
	}

	return cat
}

func normalizeInventory(raw any) map[string][]map[string]any {
	out := map[string][]map[string]any{}
	m, ok := raw.(map[string]any)
	if !ok {
		return out
	}
	for key, val := range m {
		out[key] = normalizeEntryList(val)
	}
	return out
}

func normalizeRecipes(raw any) map[string]map[string]map[string]any {
	out := map[string]map[string]map[string]any{}
	m, ok := raw.(map[string]any)
	if !ok {
		return out
	}
	for category, val := range m {
		group := map[string]map[string]any{}
		inner, ok := val.(map[string]any)
		if ok {
			for name, entry := range inner {
				group[name] = normalizeEntry(entry)
			}
		}
		out[category] = group
	}
	return out
}

// normalizeEntryList coerces raw into a list of objects, dropping
// non-object elements.
func normalizeEntryList(raw any) []map[string]any {
	out := []map[string]any{}
	list, ok := raw.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		if entry, ok := item.(map[string]any); ok {
			out = append(out, entry)
		}
	}
	return out
}

func normalizeEntry(raw any) map[string]any {
	if entry, ok := raw.(map[string]any); ok {
		return entry
	}
	return map[string]any{}
}
