package provider

import (
	"context"
	"testing"
)

type nopCompleter struct{}

func (nopCompleter) Complete(ctx context.Context, messages []Message, options *CompleteOptions) (*Completion, error) {
	return &Completion{}, nil
}

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()

	r.Register("openai", nopCompleter{}, 0)

	handle, ok := r.Lookup("openai")
	if !ok {
		t.Fatal("expected handle")
	}

	if handle.Priority != DefaultPriority {
		t.Errorf("expected default priority %d, got %d", DefaultPriority, handle.Priority)
	}
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	r := NewRegistry()

	r.Register("openai", nopCompleter{}, 10)

	snapshot := r.Snapshot()

	r.Register("anthropic", nopCompleter{}, 5)

	if len(snapshot) != 1 {
		t.Errorf("snapshot must not observe later registrations, got %d entries", len(snapshot))
	}

	if len(r.Snapshot()) != 2 {
		t.Errorf("expected 2 entries in a fresh snapshot")
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()

	r.Register("openai", nopCompleter{}, 0)
	r.Register("anthropic", nopCompleter{}, 0)

	names := r.Names()

	if len(names) != 2 || names[0] != "anthropic" || names[1] != "openai" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()

	r.Register("openai", nopCompleter{}, 10)
	r.Register("openai", nopCompleter{}, 20)

	handle, _ := r.Lookup("openai")

	if handle.Priority != 20 {
		t.Errorf("expected re-registration to replace, got priority %d", handle.Priority)
	}
}
