package models

// PointDefinition describes one interconnection point and direction of the feed.
// ID is the feed's pointDirection key, e.g. "LT-TSO-0001ITP-00050exit".
type PointDefinition struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Operator string `yaml:"operator,omitempty"`
	Country  string `yaml:"country,omitempty"`
}

// Label returns the display name, falling back to the ID.
func (p PointDefinition) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// CompositeDefinition is a named sum over several points.
type CompositeDefinition struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}
