package voice

import "github.com/sahilm/fuzzy"

// Option is one selectable provider voice. ID is the provider-specific
// token sent on synthesis calls; Name is the human-readable label.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog returns the fixed set of voices the provider supports.
func Catalog() []Option {
	return []Option{
		{ID: "cmn-TW-Wavenet-A", Name: "Poised female (WaveNet)"},
		{ID: "cmn-TW-Wavenet-B", Name: "Steady male (WaveNet)"},
		{ID: "cmn-TW-Wavenet-C", Name: "Bright female (WaveNet)"},
		{ID: "cmn-TW-Standard-A", Name: "Standard female"},
		{ID: "cmn-TW-Standard-B", Name: "Standard male"},
	}
}

// Lookup resolves a voice ID to its catalog entry.
func Lookup(id string) (Option, bool) {
	for _, o := range Catalog() {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// DisplayName returns the catalog label for a voice ID, falling back to the
// raw ID for voices outside the catalog.
func DisplayName(id string) string {
	if o, ok := Lookup(id); ok {
		return o.Name
	}
	return id
}

type catalogSource []Option

func (c catalogSource) String(i int) string { return c[i].ID + " " + c[i].Name }
func (c catalogSource) Len() int            { return len(c) }

// Search fuzzy-matches query against voice IDs and labels, best match first.
// An empty query returns the whole catalog in declaration order.
func Search(query string) []Option {
	catalog := Catalog()
	if query == "" {
		return catalog
	}
	matches := fuzzy.FindFrom(query, catalogSource(catalog))
	out := make([]Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, catalog[m.Index])
	}
	return out
}
