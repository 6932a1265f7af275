package loader

import "fmt"

// State is the progress of one Load call.
type State int

const (
	Unloaded State = iota
	DescriptionParsed
	GeometryLoaded
	TopologyLoaded
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case DescriptionParsed:
		return "description-parsed"
	case GeometryLoaded:
		return "geometry-loaded"
	case TopologyLoaded:
		return "topology-loaded"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether s is Ready or Failed.
func (s State) Terminal() bool { return s == Ready || s == Failed }

// TopologyKind records which topology dialect a mesh was loaded from.
type TopologyKind int

const (
	TopologyMixed TopologyKind = iota
	TopologyUniform
)

func (k TopologyKind) String() string {
	if k == TopologyUniform {
		return "uniform"
	}
	return "mixed"
}
