package enums

import "github.com/tturner/sadecode/internal/diag"

// NodeType is the NodeInfo node type.
type NodeType uint8

const (
	NodeTypeUnknown NodeType = 0
	NodeTypeHFI     NodeType = 1
	NodeTypeSwitch  NodeType = 2
	NodeTypeRouter  NodeType = 3
)

var nodeTypeNames = map[NodeType]string{
	NodeTypeHFI:    "FI",
	NodeTypeSwitch: "SW",
	NodeTypeRouter: "RT",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// LookupNodeType maps a raw node type code.
func LookupNodeType(code uint8) (NodeType, bool) {
	t := NodeType(code)
	_, ok := nodeTypeNames[t]
	if !ok {
		return NodeTypeUnknown, false
	}
	return t, true
}

// ResolveNodeType is LookupNodeType with the NodeTypeUnknown sentinel.
func ResolveNodeType(code uint8, c *diag.Collector) NodeType {
	if t, ok := LookupNodeType(code); ok {
		return t
	}
	miss(c, "NodeType", hex8(code), NodeTypeUnknown.String())
	return NodeTypeUnknown
}
