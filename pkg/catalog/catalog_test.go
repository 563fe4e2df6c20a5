package catalog

import "testing"

func TestLookup(t *testing.T) {
	c := Default()

	e, ok := c.Lookup("قسد")
	if !ok {
		t.Fatal("expected SDF entry")
	}
	if e.NameEN != "SDF" {
		t.Fatalf("NameEN = %q, want SDF", e.NameEN)
	}
	if e.Category != CategoryFaction {
		t.Fatalf("Category = %q, want %q", e.Category, CategoryFaction)
	}

	if _, ok := c.Lookup("nonexistent"); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := New([]Entity{
		{ID: "b"},
		{ID: "a"},
		{ID: "b", NameEN: "duplicate"},
	})

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("order = [%s %s], want [b a]", all[0].ID, all[1].ID)
	}
	if all[0].NameEN == "duplicate" {
		t.Fatal("duplicate id replaced first entry")
	}
}

func TestTransitionWindows(t *testing.T) {
	c := Default()

	regime, ok := c.Lookup("النظام")
	if !ok || regime.Window == nil {
		t.Fatal("regime entry missing activity window")
	}
	if regime.Window.End != "2024-12" || regime.Window.Start != "" {
		t.Fatalf("regime window = %+v, want end-only 2024-12", *regime.Window)
	}

	transitional, ok := c.Lookup("الحكومة الانتقالية")
	if !ok || transitional.Window == nil {
		t.Fatal("transitional government entry missing activity window")
	}
	if transitional.Window.Start != "2024-12" || transitional.Window.End != "" {
		t.Fatalf("transitional window = %+v, want start-only 2024-12", *transitional.Window)
	}
}

func TestAllEntriesHaveNames(t *testing.T) {
	for _, e := range Default().All() {
		if e.ID == "" || e.NameEN == "" || e.NameAR == "" || e.Category == "" {
			t.Fatalf("incomplete entry: %+v", e)
		}
	}
}
