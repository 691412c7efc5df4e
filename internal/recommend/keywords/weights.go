// Package keywords scores keyword preferences: per-keyword base weights,
// bonuses for keyword combinations that are requested together, and a plain
// substring-containment score of review text.
package keywords

import (
	"slices"
	"strings"
)

// DefaultWeights are the base multipliers of the known keywords.
var DefaultWeights = map[string]float64{
	"자연":   1.0,
	"체험":   1.1,
	"역사":   0.9,
	"문화":   1.0,
	"풍경":   1.1,
	"맛":    1.2,
	"분위기":  1.1,
	"가성비":  0.8,
	"친절":   1.0,
	"청결":   0.9,
	"바다뷰":  1.2,
	"산뷰":   1.1,
	"수영장":  1.0,
	"조식포함": 0.9,
	"뷰":    1.3,
	"디저트":  1.1,
	"조용함":  0.9,
	"인테리어": 1.0,
}

// Combination is a set of keywords whose members all receive Bonus when every
// one of them is requested.
type Combination struct {
	Keywords []string `mapstructure:"keywords"`
	Bonus    float64  `mapstructure:"bonus"`
}

// DefaultCombinations are the built-in combination bonuses.
var DefaultCombinations = []Combination{
	{Keywords: []string{"자연", "체험"}, Bonus: 1.2},
	{Keywords: []string{"맛", "분위기"}, Bonus: 1.3},
	{Keywords: []string{"바다뷰", "수영장"}, Bonus: 1.1},
	{Keywords: []string{"산뷰", "조식포함"}, Bonus: 1.0},
	{Keywords: []string{"역사", "문화"}, Bonus: 1.2},
	{Keywords: []string{"뷰", "분위기"}, Bonus: 1.4},
}

// Engine holds the weight tables. It is immutable after NewEngine returns.
type Engine struct {
	weights      map[string]float64
	combinations []Combination
}

// NewEngine copies the given tables. Nil arguments select the defaults.
// Combinations are stored sorted by their sorted, joined keyword set so that
// overlapping bonuses are always applied in the same order.
func NewEngine(weights map[string]float64, combinations []Combination) *Engine {
	if weights == nil {
		weights = DefaultWeights
	}
	if combinations == nil {
		combinations = DefaultCombinations
	}

	e := &Engine{
		weights:      make(map[string]float64, len(weights)),
		combinations: make([]Combination, 0, len(combinations)),
	}
	for k, v := range weights {
		e.weights[k] = v
	}
	for _, c := range combinations {
		if len(c.Keywords) < 2 {
			continue
		}
		kws := slices.Clone(c.Keywords)
		slices.Sort(kws)
		e.combinations = append(e.combinations, Combination{Keywords: slices.Compact(kws), Bonus: c.Bonus})
	}
	slices.SortStableFunc(e.combinations, func(a, b Combination) int {
		return strings.Compare(strings.Join(a.Keywords, "\x00"), strings.Join(b.Keywords, "\x00"))
	})
	return e
}

// Weight returns the base weight of keyword, 1.0 when unknown.
func (e *Engine) Weight(keyword string) float64 {
	if w, ok := e.weights[keyword]; ok {
		return w
	}
	return 1.0
}

// CombinationWeight returns a weight for every requested keyword: the base
// weight multiplied by the bonus of every combination fully contained in
// keywords. A keyword in several satisfied combinations receives every bonus.
func (e *Engine) CombinationWeight(keywords []string) map[string]float64 {
	weights := make(map[string]float64, len(keywords))
	requested := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		weights[kw] = e.Weight(kw)
		requested[kw] = struct{}{}
	}

	for _, c := range e.combinations {
		if !containsAll(requested, c.Keywords) {
			continue
		}
		for _, kw := range c.Keywords {
			weights[kw] *= c.Bonus
		}
	}
	return weights
}

func containsAll(set map[string]struct{}, keys []string) bool {
	for _, k := range keys {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}

// Combinations returns a copy of the combination table in application order.
func (e *Engine) Combinations() []Combination {
	out := make([]Combination, len(e.combinations))
	for i, c := range e.combinations {
		out[i] = Combination{Keywords: slices.Clone(c.Keywords), Bonus: c.Bonus}
	}
	return out
}
