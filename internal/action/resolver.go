// Package action resolves action names into rendered prompts.
package action

import (
	"rephraser/internal/config"
	"rephraser/internal/errs"
	"rephraser/internal/template"
)

// Resolver owns the declared actions. It is read-only after construction and
// safe for concurrent use.
type Resolver struct {
	actions []config.Action
}

// NewResolver keeps the actions in declaration order.
func NewResolver(actions []config.Action) *Resolver {
	return &Resolver{actions: actions}
}

// List returns all actions in declaration order.
func (r *Resolver) List() []config.Action {
	return r.actions
}

// Find returns the first action whose name matches exactly.
func (r *Resolver) Find(name string) (config.Action, bool) {
	for _, a := range r.actions {
		if a.Name == name {
			return a, true
		}
	}
	return config.Action{}, false
}

// Resolve renders the named action's prompt template with {text} bound to
// the input. Each call builds a fresh engine; there is no shared state
// between resolutions. Template errors propagate unchanged so callers can
// tell a missing action from a malformed template by kind.
func (r *Resolver) Resolve(name, text string) (string, error) {
	a, ok := r.Find(name)
	if !ok {
		return "", errs.New(errs.KindActionNotFound, "action %q not found", name)
	}

	engine := template.New()
	engine.Bind("text", text)

	return engine.Render(a.PromptTemplate)
}
