// Package registry provides the identifier registry collaborator:
// issuance of process-unique identifiers and a reference table keyed
// by them. Identifiers are opaque equality keys; nothing in voxform
// parses their structure.
package registry

import "github.com/google/uuid"

// Identifier is an opaque unique string handle.
type Identifier string

// Registry issues unique identifiers and tracks references registered
// under them. It is used single-threaded; issued identifiers stay
// unique across repeated calls regardless.
type Registry interface {
	// IssueID returns a fresh identifier, retrying on collision with
	// any identifier previously issued by this registry.
	IssueID() Identifier
	// Register associates ref with an issued identifier.
	Register(id Identifier, ref any)
	// Unregister drops the reference for id. The identifier itself
	// stays issued and will not be handed out again.
	Unregister(id Identifier)
	// RemoveID forgets id entirely, reference included.
	RemoveID(id Identifier)
}

// UUIDRegistry is the default Registry backed by random UUIDs.
type UUIDRegistry struct {
	issued map[Identifier]struct{}
	refs   map[Identifier]any
}

var _ Registry = (*UUIDRegistry)(nil)

// New returns an empty UUIDRegistry.
func New() *UUIDRegistry {
	return &UUIDRegistry{
		issued: make(map[Identifier]struct{}),
		refs:   make(map[Identifier]any),
	}
}

// IssueID returns a fresh identifier, looping until it finds one not
// issued before.
func (r *UUIDRegistry) IssueID() Identifier {
	for {
		id := Identifier(uuid.NewString())
		if _, taken := r.issued[id]; taken {
			continue
		}
		r.issued[id] = struct{}{}
		return id
	}
}

// Register associates ref with id.
func (r *UUIDRegistry) Register(id Identifier, ref any) {
	r.refs[id] = ref
}

// Unregister drops the reference registered under id.
func (r *UUIDRegistry) Unregister(id Identifier) {
	delete(r.refs, id)
}

// RemoveID forgets id entirely.
func (r *UUIDRegistry) RemoveID(id Identifier) {
	delete(r.refs, id)
	delete(r.issued, id)
}

// Lookup returns the reference registered under id, if any.
func (r *UUIDRegistry) Lookup(id Identifier) (any, bool) {
	ref, ok := r.refs[id]
	return ref, ok
}
