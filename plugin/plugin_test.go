package plugin

import "testing"

type fakeState struct {
	custom map[string]any
}

func (s *fakeState) SetCustom(key string, value any) {
	if s.custom == nil {
		s.custom = make(map[string]any)
	}
	s.custom[key] = value
}

type upperHandler struct{}

func (upperHandler) ParseArgs(args string) (ParsedArgs, error) { return args, nil }
func (upperHandler) Apply(state IRState, parsed ParsedArgs) {
	state.SetCustom("upper", parsed)
}
func (upperHandler) AffectsAnimation() bool { return false }

func TestRegistryLookupByExactName(t *testing.T) {
	reg := NewRegistryBuilder().Register("xup", upperHandler{}).Build()

	h, ok := reg.Lookup("xup")
	if !ok {
		t.Fatalf("expected xup to be registered")
	}
	if h.AffectsAnimation() {
		t.Fatalf("expected xup to not affect animation")
	}

	if _, ok := reg.Lookup("xnope"); ok {
		t.Fatalf("unregistered tag name must miss")
	}
}

func TestBuilderLaterRegisterOverwrites(t *testing.T) {
	first := upperHandler{}
	reg := NewRegistryBuilder().
		Register("xup", first).
		Register("xup", upperHandler{}).
		Build()

	if reg.Len() != 1 {
		t.Fatalf("expected one registered name, got %d", reg.Len())
	}
}

func TestBuildSnapshotsBuilderState(t *testing.T) {
	builder := NewRegistryBuilder().Register("xup", upperHandler{})
	reg := builder.Build()

	builder.Register("xup2", upperHandler{})

	if reg.Len() != 1 {
		t.Fatalf("registering on the builder after Build must not affect the built registry, got len %d", reg.Len())
	}
	if _, ok := reg.Lookup("xup2"); ok {
		t.Fatalf("xup2 must not be visible on the already-built registry")
	}
}

func TestNilRegistryLookupMisses(t *testing.T) {
	var reg *ExtensionRegistry
	if _, ok := reg.Lookup("xup"); ok {
		t.Fatalf("nil registry must report every lookup as a miss")
	}
	if reg.Len() != 0 {
		t.Fatalf("nil registry must report zero length")
	}
}

func TestHandlerRoundTrip(t *testing.T) {
	reg := NewRegistryBuilder().Register("xup", upperHandler{}).Build()
	h, _ := reg.Lookup("xup")

	parsed, err := h.ParseArgs("hello")
	if err != nil {
		t.Fatalf("parse args: %v", err)
	}
	state := &fakeState{}
	h.Apply(state, parsed)
	if state.custom["upper"] != "hello" {
		t.Fatalf("expected handler to set custom state, got %v", state.custom)
	}
}
