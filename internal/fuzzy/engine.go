package fuzzy

// Rule reads the knowledge base and the state snapshot and asserts zero or
// more facts. Rules must not retain kb or state after returning.
type Rule[S any] func(kb *KnowledgeBase, state S)

type namedRule[S any] struct {
	name string
	fn   Rule[S]
}

// Engine runs an ordered list of rules once per evaluation. There is no
// fixpoint iteration: a rule that reads another rule's output must be added
// after it.
type Engine[S any] struct {
	rules []namedRule[S]
}

// NewEngine returns an empty engine.
func NewEngine[S any]() *Engine[S] {
	return &Engine[S]{}
}

// Add appends a rule to the end of the pipeline and returns the engine so
// calls can be chained.
func (e *Engine[S]) Add(name string, rule Rule[S]) *Engine[S] {
	e.rules = append(e.rules, namedRule[S]{name: name, fn: rule})
	return e
}

// Names returns the rule names in evaluation order.
func (e *Engine[S]) Names() []string {
	out := make([]string, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.name
	}
	return out
}

// Len returns the number of rules.
func (e *Engine[S]) Len() int {
	return len(e.rules)
}

// Evaluate runs every rule once, in order, against a fresh knowledge base.
func (e *Engine[S]) Evaluate(state S) *KnowledgeBase {
	kb := NewKnowledgeBase()
	e.EvaluateInto(kb, state)
	return kb
}

// EvaluateInto runs every rule once, in order, against kb.
func (e *Engine[S]) EvaluateInto(kb *KnowledgeBase, state S) {
	for _, r := range e.rules {
		r.fn(kb, state)
	}
}
