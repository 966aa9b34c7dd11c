package registry

import (
	"errors"
	"sync"
)

// Rule classifies a bare identity token.
type Rule interface {
	// Name returns the rule's unique identifier.
	Name() string

	// Match checks whether the rule claims term.
	// Returns the platform tag and true if matched, or empty string and false if not.
	Match(term string) (string, bool)
}

// Registry holds rules in registration order in a thread-safe manner.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	// Order preserving list; Match evaluates first registered first
	ordered []Rule
}

// New creates a new Registry instance.
func New() *Registry {
	return &Registry{
		rules:   make(map[string]Rule),
		ordered: make([]Rule, 0),
	}
}

// Register appends a rule to the evaluation order.
// Returns an error if the rule is nil, has an empty name, or is already registered.
func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return errors.New("rule cannot be nil")
	}

	name := rule.Name()
	if name == "" {
		return errors.New("rule name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[name]; exists {
		return errors.New("rule already registered: " + name)
	}

	r.rules[name] = rule
	r.ordered = append(r.ordered, rule)

	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
	return r
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[name]
	return rule, ok
}

// GetAll returns all rules in evaluation order.
// The returned slice is a copy and safe for concurrent use.
func (r *Registry) GetAll() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.ordered))
	result = append(result, r.ordered...)

	return result
}

// Match returns the result of the first rule that claims term.
// Returns empty string, nil and false if no rule matches.
func (r *Registry) Match(term string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.ordered {
		if tag, ok := rule.Match(term); ok {
			return tag, rule, true
		}
	}

	return "", nil, false
}
