package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

// decode parses raw JSON the way the API layer does before normalising.
func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshalling fixture: %v", err)
	}
	return v
}

func TestNormalizeStore_WellFormed(t *testing.T) {
	raw := decode(t, `{
		"store_name": "riverside",
		"inventory": {"dairy": [{"name": "milk", "qty": 4}]},
		"recipes": {"breakfast": {"pancakes": {"flour": "200g"}}},
		"memo": "restock friday",
		"ledger": [{"date": "2026-08-01", "total": 120.5}]
	}`)

	doc := NormalizeStore(raw, "fallback")

	if doc.StoreName != "riverside" {
		t.Errorf("StoreName = %q, want %q", doc.StoreName, "riverside")
	}
	if doc.Memo != "restock friday" {
		t.Errorf("Memo = %q, want %q", doc.Memo, "restock friday")
	}
	if len(doc.Inventory["dairy"]) != 1 || doc.Inventory["dairy"][0]["name"] != "milk" {
		t.Errorf("Inventory = %v, want dairy with milk entry", doc.Inventory)
	}
	if doc.Recipes["breakfast"]["pancakes"]["flour"] != "200g" {
		t.Errorf("Recipes = %v, want breakfast/pancakes", doc.Recipes)
	}
	if len(doc.Ledger) != 1 {
		t.Errorf("len(Ledger) = %d, want 1", len(doc.Ledger))
	}
}

func TestNormalizeStore_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"null", `null`},
		{"scalar", `42`},
		{"string", `"hello"`},
		{"array", `[1, 2, 3]`},
		{"all fields null", `{"store_name": null, "inventory": null, "recipes": null, "memo": null, "ledger": null}`},
		{"all fields wrong type", `{"store_name": 7, "inventory": "x", "recipes": [1], "memo": {}, "ledger": "y"}`},
		{"unknown keys only", `{"colour": "red", "nested": {"deep": true}}`},
	}

	want := DefaultStore("fallback")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeStore(decode(t, tt.raw), "fallback")
			if !reflect.DeepEqual(got, want) {
				t.Errorf("NormalizeStore() = %+v, want default %+v", got, want)
			}
		})
	}
}

func TestNormalizeStore_PartiallyMalformed(t *testing.T) {
	raw := decode(t, `{
		"store_name": "corner",
		"inventory": {"good": [{"name": "rice"}], "bad": "not-a-list", "mixed": [{"ok": 1}, "junk", 7]},
		"recipes": {"valid": {"soup": {"salt": "1tsp"}}, "broken": "nope"},
		"memo": 99,
		"ledger": [{"total": 5}, null, [1]]
	}`)

	doc := NormalizeStore(raw, "fallback")

	if doc.StoreName != "corner" {
		t.Errorf("StoreName = %q, want %q", doc.StoreName, "corner")
	}
	if doc.Memo != "" {
		t.Errorf("Memo = %q, want empty (wrong type)", doc.Memo)
	}
	if len(doc.Inventory["good"]) != 1 {
		t.Errorf("good inventory = %v, want 1 entry", doc.Inventory["good"])
	}
	if len(doc.Inventory["bad"]) != 0 {
		t.Errorf("bad inventory = %v, want empty", doc.Inventory["bad"])
	}
	if len(doc.Inventory["mixed"]) != 1 {
		t.Errorf("mixed inventory = %v, want non-object elements dropped", doc.Inventory["mixed"])
	}
	if doc.Recipes["valid"]["soup"]["salt"] != "1tsp" {
		t.Errorf("valid recipes = %v", doc.Recipes["valid"])
	}
	if len(doc.Recipes["broken"]) != 0 {
		t.Errorf("broken recipes = %v, want empty group", doc.Recipes["broken"])
	}
	if len(doc.Ledger) != 1 {
		t.Errorf("len(Ledger) = %d, want 1", len(doc.Ledger))
	}
}

func TestNormalizeCatalog_DuplicateAndEmptyNames(t *testing.T) {
	raw := decode(t, `{
		"stores": ["alpha", "beta", "alpha", "", 7, "beta"],
		"by_store": {"alpha": {"store_name": "alpha", "memo": "hi"}}
	}`)

	cat := NormalizeCatalog(raw)

	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(cat.Stores, want) {
		t.Errorf("Stores = %v, want %v", cat.Stores, want)
	}

	// Every registered name gets a document, even without a by_store entry
	if _, ok := cat.ByStore["beta"]; !ok {
		t.Error("beta should have a default document")
	}
	if cat.ByStore["alpha"].Memo != "hi" {
		t.Errorf("alpha memo = %q, want %q", cat.ByStore["alpha"].Memo, "hi")
	}
}

func TestNormalizeCatalog_Degenerate(t *testing.T) {
	tests := []string{`{}`, `null`, `"text"`, `[1]`, `{"stores": "x", "by_store": 1, "last_sync": []}`}

	want := DefaultCatalog()
	for _, raw := range tests {
		got := NormalizeCatalog(decode(t, raw))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("NormalizeCatalog(%s) = %+v, want default", raw, got)
		}
	}
}

func TestNormalizeCatalog_OrphanedByStoreEntries(t *testing.T) {
	// Documents for unregistered names are dropped
	raw := decode(t, `{
		"stores": ["known"],
		"by_store": {"known": {}, "orphan": {"memo": "lost"}}
	}`)

	cat := NormalizeCatalog(raw)

	if len(cat.ByStore) != 1 {
		t.Errorf("len(ByStore) = %d, want 1", len(cat.ByStore))
	}
	if _, ok := cat.ByStore["orphan"]; ok {
		t.Error("unregistered store documents should be dropped")
	}
}
