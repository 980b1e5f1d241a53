package meta

import "strings"

// Method enumerates the generic operations a resource type may support.
type Method uint8

const (
	// MethodGet retrieves a resource, yielding a handle on it.
	MethodGet Method = 1 << iota
	// MethodGetMetadata retrieves a resource's metadata.
	MethodGetMetadata
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "get"
	case MethodGetMetadata:
		return "getMetadata"
	}
	return "unknown"
}

// MethodSet is the set of generic operations enabled for a resource type.
type MethodSet uint8

// NewMethodSet returns a MethodSet containing the given Methods.
func NewMethodSet(methods ...Method) MethodSet {
	var set MethodSet
	for _, m := range methods {
		set |= MethodSet(m)
	}
	return set
}

// Has returns true if m is enabled in the set.
func (s MethodSet) Has(m Method) bool {
	return s&MethodSet(m) != 0
}

// Without returns a copy of the set with m removed.
func (s MethodSet) Without(m Method) MethodSet {
	return s &^ MethodSet(m)
}

func (s MethodSet) String() string {
	names := []string{}
	for _, m := range []Method{MethodGet, MethodGetMetadata} {
		if s.Has(m) {
			names = append(names, m.String())
		}
	}
	return strings.Join(names, ",")
}
