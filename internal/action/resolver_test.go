package action

import (
	"strings"
	"testing"

	"rephraser/internal/config"
	"rephraser/internal/errs"
)

func defaultResolver() *Resolver {
	return NewResolver(config.Default().Actions)
}

func TestResolve(t *testing.T) {
	prompt, err := defaultResolver().Resolve("polite", "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "Hello") {
		t.Error("prompt should contain the input text")
	}
	if !strings.Contains(prompt, "丁寧な表現") {
		t.Error("prompt should contain the polite template text")
	}
}

func TestResolveActionNotFound(t *testing.T) {
	_, err := defaultResolver().Resolve("nonexistent", "test")
	if err == nil {
		t.Fatal("expected error")
	}
	if errs.KindOf(err) != errs.KindActionNotFound {
		t.Errorf("expected action_not_found kind, got %v", errs.KindOf(err))
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error should carry the requested name: %v", err)
	}
}

func TestResolveCaseSensitive(t *testing.T) {
	if _, err := defaultResolver().Resolve("Polite", "x"); errs.KindOf(err) != errs.KindActionNotFound {
		t.Errorf("lookup must be case-sensitive, got %v", err)
	}
}

func TestResolvePropagatesTemplateError(t *testing.T) {
	r := NewResolver([]config.Action{{
		Name:           "translate",
		PromptTemplate: "Translate '{text}' to {language}",
	}})

	_, err := r.Resolve("translate", "Hello")
	if errs.KindOf(err) != errs.KindInvalidTemplate {
		t.Errorf("template error must not be reclassified, got %v", err)
	}
	if !strings.Contains(err.Error(), "language") {
		t.Errorf("error should name the unbound variable: %v", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := defaultResolver()
	first, err := r.Resolve("summarize", "some long text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Resolve("summarize", "some long text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("identical arguments must produce identical prompts")
	}
}

func TestList(t *testing.T) {
	actions := defaultResolver().List()
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}

	// Declaration order is part of the contract.
	expected := []string{"polite", "organize", "summarize"}
	for i, name := range expected {
		if actions[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, actions[i].Name)
		}
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	r := NewResolver([]config.Action{
		{Name: "dup", PromptTemplate: "first {text}"},
		{Name: "dup", PromptTemplate: "second {text}"},
	})
	a, ok := r.Find("dup")
	if !ok {
		t.Fatal("expected match")
	}
	if a.PromptTemplate != "first {text}" {
		t.Errorf("first declaration must win, got %q", a.PromptTemplate)
	}
}
