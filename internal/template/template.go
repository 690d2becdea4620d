// Package template renders prompt templates by substituting {variable}
// placeholders with bound values.
package template

import (
	"strings"

	"rephraser/internal/errs"
)

// Engine holds variable bindings for one render. Bindings are applied in the
// order they were first bound, so substitution is deterministic.
type Engine struct {
	names  []string
	values map[string]string
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{values: make(map[string]string)}
}

// Bind registers or overwrites a variable. The value is substituted as-is;
// no escaping is performed. Returns the engine for chaining.
func (e *Engine) Bind(name, value string) *Engine {
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}
	e.values[name] = value
	return e
}

// Render substitutes every bound variable into the template, then rejects
// the result if any {identifier} placeholder survived. Substitution runs
// before validation so only placeholders present in the final text count as
// missing. All missing names are reported in one error.
func (e *Engine) Render(template string) (string, error) {
	result := template
	for _, name := range e.names {
		result = strings.ReplaceAll(result, "{"+name+"}", e.values[name])
	}

	if missing := e.missingVars(result); len(missing) > 0 {
		return "", errs.New(errs.KindInvalidTemplate,
			"invalid template: missing variables: %s", strings.Join(missing, ", "))
	}
	return result, nil
}

// missingVars scans once, left to right, for {identifier} placeholders whose
// identifier is non-empty and unbound. An opening brace with no closing brace
// before end of string is not a placeholder, so literal braces pass through.
func (e *Engine) missingVars(text string) []string {
	var missing []string
	seen := make(map[string]bool)

	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end := strings.IndexByte(text[i+1:], '}')
		if end < 0 {
			break
		}
		name := text[i+1 : i+1+end]
		if name != "" {
			if _, bound := e.values[name]; !bound && !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
		}
		i += end + 1
	}
	return missing
}
