package fuzzy

import (
	"math"
	"sort"
)

// Fact names a fuzzy proposition, e.g. "isNear" or "fireLaser".
type Fact string

// KnowledgeBase maps facts to grades in [0,1]. One knowledge base serves a
// single decision cycle for a single robot and is then discarded.
type KnowledgeBase struct {
	grades map[Fact]float64
}

// NewKnowledgeBase returns an empty knowledge base.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{grades: make(map[Fact]float64)}
}

// Assert sets the grade of a fact, overwriting any earlier value.
// Grades outside [0,1] are clamped; NaN is stored as 0.
func (kb *KnowledgeBase) Assert(f Fact, grade float64) {
	kb.grades[f] = Clamp(grade)
}

// Retract removes a fact so it reads as absent again.
func (kb *KnowledgeBase) Retract(f Fact) {
	delete(kb.grades, f)
}

// Grade returns the grade of f, or 0 when it was never asserted.
func (kb *KnowledgeBase) Grade(f Fact) float64 {
	return kb.grades[f]
}

// Has reports whether f has been asserted.
func (kb *KnowledgeBase) Has(f Fact) bool {
	_, ok := kb.grades[f]
	return ok
}

// MinimumGrade is fuzzy AND (Zadeh intersection) over facts.
// With no facts it returns 0.
func (kb *KnowledgeBase) MinimumGrade(facts ...Fact) float64 {
	if len(facts) == 0 {
		return 0
	}
	lo := 1.0
	for _, f := range facts {
		lo = math.Min(lo, kb.Grade(f))
	}
	return lo
}

// MaximumGrade is fuzzy OR (Zadeh union) over facts.
// With no facts it returns 0.
func (kb *KnowledgeBase) MaximumGrade(facts ...Fact) float64 {
	hi := 0.0
	for _, f := range facts {
		hi = math.Max(hi, kb.Grade(f))
	}
	return hi
}

// MaximalSet is the result of Maximal.
type MaximalSet struct {
	Grade    float64 // the maximum grade
	Facts    []Fact  // facts whose grade equals Grade, in argument order
	AllEqual bool    // every queried fact tied at Grade
}

// Maximal returns the maximum grade over facts together with every fact
// holding exactly that grade. Absent facts take part with grade 0.
func (kb *KnowledgeBase) Maximal(facts ...Fact) MaximalSet {
	hi := kb.MaximumGrade(facts...)
	set := MaximalSet{Grade: hi}
	for _, f := range facts {
		if kb.Grade(f) == hi {
			set.Facts = append(set.Facts, f)
		}
	}
	set.AllEqual = len(facts) > 0 && len(set.Facts) == len(facts)
	return set
}

// Entry is a single fact/grade pair.
type Entry struct {
	Fact  Fact
	Grade float64
}

// Facts returns every asserted fact sorted by name.
func (kb *KnowledgeBase) Facts() []Entry {
	out := make([]Entry, 0, len(kb.grades))
	for f, g := range kb.grades {
		out = append(out, Entry{Fact: f, Grade: g})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fact < out[j].Fact })
	return out
}

// Len returns the number of asserted facts.
func (kb *KnowledgeBase) Len() int {
	return len(kb.grades)
}

// Not is fuzzy negation.
func Not(grade float64) float64 {
	return 1.0 - grade
}

// Clamp limits a grade to [0,1].
func Clamp(grade float64) float64 {
	switch {
	case math.IsNaN(grade):
		return 0
	case grade < 0:
		return 0
	case grade > 1:
		return 1
	default:
		return grade
	}
}
