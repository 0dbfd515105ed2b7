package verification

import (
	"fmt"
	"strings"

	"veripass/internal/catalog"
	"veripass/internal/profile"
)

// Evaluator scores products against compliance profiles. This is pure
// domain logic - no I/O, no side effects: identical inputs always produce
// identical output.
type Evaluator struct {
	registry Registry
}

func NewEvaluator(registry Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate applies every applicable rule cumulatively; one violation never
// short-circuits the remaining rules. Returns the compliance verdict and
// the full gap list, with compliant == (len(gaps) == 0).
func (e *Evaluator) Evaluate(p catalog.Product, prof profile.Profile) (bool, []Gap) {
	var gaps []Gap

	gaps = append(gaps, scoreFloorGaps(p, prof.Rules)...)
	gaps = append(gaps, bannedMaterialGaps(p.Materials, prof.Rules.BannedKeywords)...)
	gaps = append(gaps, requiredMaterialGaps(p.Materials, prof.Rules.RequiredKeywords)...)
	gaps = append(gaps, e.regulationGaps(p.Declarations, prof.Regulations)...)

	return len(gaps) == 0, gaps
}

func scoreFloorGaps(p catalog.Product, rules profile.Rules) []Gap {
	min := rules.MinSustainabilityScore
	if min == nil {
		return nil
	}
	if p.SustainabilityScore == nil {
		return []Gap{{
			Regulation: "Sustainability",
			Issue:      fmt.Sprintf("no sustainability score is recorded; the required minimum is %d", *min),
		}}
	}
	if *p.SustainabilityScore < *min {
		return []Gap{{
			Regulation: "Sustainability",
			Issue:      fmt.Sprintf("score of %d is below the required minimum of %d", *p.SustainabilityScore, *min),
		}}
	}
	return nil
}

// bannedMaterialGaps emits one gap per material whose name contains any
// banned keyword, naming the material.
func bannedMaterialGaps(materials []catalog.Material, banned []string) []Gap {
	if len(banned) == 0 {
		return nil
	}
	var gaps []Gap
	for _, m := range materials {
		for _, kw := range banned {
			if containsFold(m.Name, kw) {
				gaps = append(gaps, Gap{
					Regulation: "Materials",
					Issue:      fmt.Sprintf("material %q contains banned keyword %q", m.Name, kw),
				})
				break
			}
		}
	}
	return gaps
}

// requiredMaterialGaps is satisfied when at least one material name contains
// at least one required keyword. Otherwise a single gap lists every
// required keyword.
func requiredMaterialGaps(materials []catalog.Material, required []string) []Gap {
	if len(required) == 0 {
		return nil
	}
	for _, m := range materials {
		for _, kw := range required {
			if containsFold(m.Name, kw) {
				return nil
			}
		}
	}
	return []Gap{{
		Regulation: "Materials",
		Issue:      fmt.Sprintf("no material matches any of the required keywords: %s", strings.Join(required, ", ")),
	}}
}

// regulationGaps dispatches to registered checkers by lower-cased regulation
// name. Regulation names with no registered checker are silently ignored.
func (e *Evaluator) regulationGaps(d catalog.Declarations, regulations []string) []Gap {
	var gaps []Gap
	for _, reg := range regulations {
		checker, ok := e.registry[strings.ToLower(reg)]
		if !ok {
			continue
		}
		if gap := checker(d); gap != nil {
			gaps = append(gaps, *gap)
		}
	}
	return gaps
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
