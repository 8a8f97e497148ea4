// Package plugin implements the extension registry (C12): a lookup from
// override-tag name to a TagHandler, for tags outside the core's own
// recognized inventory. Registry lookup is exact-name; a tag the registry
// doesn't know stays a raw, ignored span for the renderer. The registry
// itself never changes after Build returns: handler tables are composed
// once at construction rather than mutated per lookup.
package plugin

// ParsedArgs is a handler's own parsed form of a tag's raw argument text.
// The registry does not interpret it; a handler produces it from
// ParseArgs and consumes it again in Apply.
type ParsedArgs interface{}

// IRState is the render pipeline's mutable per-event tag state a handler
// is allowed to modify — position, color, font, and the other
// ProcessedTags fields a custom tag might override. Defined as an
// interface here so this package has no import dependency on render/
// pipeline; the pipeline's concrete state type satisfies it.
type IRState interface {
	SetCustom(key string, value any)
}

// TagHandler implements the behavior of one override tag outside the
// core's built-in inventory.
type TagHandler interface {
	// ParseArgs parses a tag's raw argument text (everything after the
	// tag name, before the next '\' or '}') into a handler-specific
	// ParsedArgs value.
	ParseArgs(args string) (ParsedArgs, error)
	// Apply mutates ir_state according to parsed, within one event's tag
	// expansion pass.
	Apply(state IRState, parsed ParsedArgs)
	// AffectsAnimation reports whether this tag's effect participates in
	// \t animation sampling (its numeric properties can be interpolated)
	// as opposed to being a one-shot, non-animatable directive.
	AffectsAnimation() bool
}

// ExtensionRegistry is an immutable-after-build name -> TagHandler map.
// There is no exported mutator; the only way to change the set of
// registered tags is to build a new registry with NewRegistryBuilder and
// swap it in between renders, which is what keeps registry mutation safe
// without requiring "no active render on any session using it" to be
// enforced by a lock here.
type ExtensionRegistry struct {
	handlers map[string]TagHandler
}

// Lookup returns the handler registered for name, if any.
func (r *ExtensionRegistry) Lookup(name string) (TagHandler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[name]
	return h, ok
}

// Len reports how many tag names are registered.
func (r *ExtensionRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.handlers)
}

// RegistryBuilder accumulates (name, handler) registrations before
// producing an immutable ExtensionRegistry.
type RegistryBuilder struct {
	handlers map[string]TagHandler
}

// NewRegistryBuilder starts an empty builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{handlers: make(map[string]TagHandler)}
}

// Register adds or overwrites the handler for name and returns the
// builder, so calls chain: NewRegistryBuilder().Register(...).Register(...).Build().
func (b *RegistryBuilder) Register(name string, handler TagHandler) *RegistryBuilder {
	b.handlers[name] = handler
	return b
}

// Build produces the immutable registry. The builder copies its map so a
// builder reused after Build cannot retroactively mutate an already-built
// registry.
func (b *RegistryBuilder) Build() *ExtensionRegistry {
	handlers := make(map[string]TagHandler, len(b.handlers))
	for k, v := range b.handlers {
		handlers[k] = v
	}
	return &ExtensionRegistry{handlers: handlers}
}
