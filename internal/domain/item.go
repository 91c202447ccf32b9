package domain

import "fmt"

// ItemKind identifies what kind of item a log stream targets
type ItemKind string

const (
	ItemContainer ItemKind = "container"
	ItemStack     ItemKind = "stack"
)

// String returns the string representation of ItemKind
func (k ItemKind) String() string {
	return string(k)
}

// ItemRef identifies a streamable item: a single container by ID, or a
// compose stack by project name. Compared structurally.
type ItemRef struct {
	Kind ItemKind
	ID   string
}

// ContainerRef returns an ItemRef for a single container
func ContainerRef(id string) ItemRef {
	return ItemRef{Kind: ItemContainer, ID: id}
}

// StackRef returns an ItemRef for a compose stack
func StackRef(name string) ItemRef {
	return ItemRef{Kind: ItemStack, ID: name}
}

// IsZero reports whether the ref is unset
func (r ItemRef) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

// String returns a human-readable representation like "container: abc123"
func (r ItemRef) String() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.ID)
}
