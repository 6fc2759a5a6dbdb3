package strategy

import "testing"

func TestCatalogEntries(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 5 {
		t.Fatalf("catalog has %d entries, want 5", len(catalog))
	}

	seen := map[string]bool{}
	for _, c := range catalog {
		if seen[c.ID] {
			t.Errorf("duplicate catalog id %q", c.ID)
		}
		seen[c.ID] = true
		if c.Params.FastEMA <= 0 || c.Params.SlowEMA <= c.Params.FastEMA {
			t.Errorf("%s: bad EMA params %+v", c.ID, c.Params)
		}
		if c.Params.StopLoss <= 0 || c.Params.TakeProfit <= 0 {
			t.Errorf("%s: bad risk params %+v", c.ID, c.Params)
		}
	}
}

func TestCatalogEntryLookup(t *testing.T) {
	c, ok := CatalogEntry("conservative-swing")
	if !ok || c.Name != "Conservative Swing Trader" {
		t.Errorf("lookup = %+v, %v", c, ok)
	}
	if _, ok := CatalogEntry("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestEngineRegistry(t *testing.T) {
	e := NewEngine(nil)
	if _, ok := e.Get("missing"); ok {
		t.Error("empty engine should have no strategies")
	}
}
