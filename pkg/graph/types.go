package graph

// NodeType categorizes a node for visual encoding. Unknown tags fall back
// to TypeDefault rather than failing.
type NodeType string

const (
	TypePerson       NodeType = "PERSON"
	TypePlace        NodeType = "PLACE"
	TypeOrganization NodeType = "ORGANIZATION"
	TypeEvent        NodeType = "EVENT"
	TypeTopic        NodeType = "TOPIC"
	TypeDefault      NodeType = "DEFAULT"
)

// knownTypes is the closed set of display types.
var knownTypes = map[NodeType]bool{
	TypePerson:       true,
	TypePlace:        true,
	TypeOrganization: true,
	TypeEvent:        true,
	TypeTopic:        true,
	TypeDefault:      true,
}

// Normalize maps an unrecognized type tag to TypeDefault.
func (t NodeType) Normalize() NodeType {
	if knownTypes[t] {
		return t
	}
	return TypeDefault
}

// Node is a graph vertex representing an entity or topic.
type Node struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Type       NodeType          `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Description returns the optional description property, if present.
func (n *Node) Description() string {
	return n.Properties["description"]
}

// Edge is a directed relation between two node IDs, carrying a
// relation-type label.
type Edge struct {
	Source     string            `json:"source"`
	Target     string            `json:"target"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}
