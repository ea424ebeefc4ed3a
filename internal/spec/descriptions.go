package spec

// Descriptions maps aliases to help text for usage and completion
// output. The registry lives independently of any Table: entries
// survive re-parses, and describing an alias the current table does
// not know is legal and simply unused.
type Descriptions struct {
	text map[string]string
}

// NewDescriptions returns an empty registry.
func NewDescriptions() *Descriptions {
	return &Descriptions{text: map[string]string{}}
}

// Set registers or overwrites the description for an alias.
func (d *Descriptions) Set(alias, text string) {
	d.text[alias] = text
}

// Get returns the description for an alias, or "" when none is
// registered.
func (d *Descriptions) Get(alias string) string {
	return d.text[alias]
}

// Clear drops every registered description.
func (d *Descriptions) Clear() {
	d.text = map[string]string{}
}
