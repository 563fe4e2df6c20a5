// Package catalog holds the hand-curated table of tracked political
// entities. The table is loaded once at process start and never mutated.
package catalog

// Category classifies a tracked entity.
type Category string

const (
	CategoryGovernment   Category = "government"
	CategoryFaction      Category = "faction"
	CategoryForeignPower Category = "foreign-power"
	CategoryMilitia      Category = "militia"
	CategoryTerrorist    Category = "terrorist"
	CategoryOpposition   Category = "opposition"
)

// Window bounds the months an entity is considered active. Either bound
// may be empty. Values are zero-padded YYYY-MM strings so lexicographic
// comparison agrees with chronological order.
type Window struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Entity is one tracked actor. The ID doubles as the primary Arabic
// surface form and is always tested against text alongside the aliases.
type Entity struct {
	ID       string   `json:"id"`
	NameEN   string   `json:"name_en"`
	NameAR   string   `json:"name_ar"`
	Category Category `json:"category"`
	Aliases  []string `json:"aliases,omitempty"`
	Window   *Window  `json:"window,omitempty"`
}

// Catalog is a read-only entity table with deterministic iteration
// order. When an alias string is shared between entities, the entity
// inserted first wins, so insertion order is part of the contract.
type Catalog struct {
	entries []Entity
	byID    map[string]int
}

// New builds a catalog from the given entries, preserving order.
// Duplicate IDs keep the first entry.
func New(entries []Entity) *Catalog {
	c := &Catalog{
		entries: make([]Entity, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, ok := c.byID[e.ID]; ok {
			continue
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Lookup returns the entity with the given ID.
func (c *Catalog) Lookup(id string) (Entity, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entity{}, false
	}
	return c.entries[i], true
}

// All returns the entities in insertion order. The returned slice is
// shared and must not be modified.
func (c *Catalog) All() []Entity {
	return c.entries
}

// Len returns the number of entities.
func (c *Catalog) Len() int {
	return len(c.entries)
}
