package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veripass/internal/catalog"
	"veripass/internal/profile"
)

func intPtr(v int) *int { return &v }

func newTestEvaluator() *Evaluator {
	return NewEvaluator(NewRegistry())
}

func TestEvaluate_FullyCompliantProduct(t *testing.T) {
	// Passing score, required material present, RoHS declared.
	p := catalog.Product{
		SustainabilityScore: intPtr(80),
		Materials:           []catalog.Material{{Name: "Recycled Plastic"}},
		Declarations: catalog.Declarations{
			RoHS: &catalog.RoHSDeclaration{Compliant: true},
		},
	}
	prof := profile.Profile{
		Regulations: []string{"RoHS"},
		Rules: profile.Rules{
			MinSustainabilityScore: intPtr(70),
			RequiredKeywords:       []string{"Plastic"},
		},
	}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.True(t, compliant)
	assert.Empty(t, gaps)
}

func TestEvaluate_ScoreBelowFloor(t *testing.T) {
	p := catalog.Product{SustainabilityScore: intPtr(50)}
	prof := profile.Profile{Rules: profile.Rules{MinSustainabilityScore: intPtr(60)}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	require.Len(t, gaps, 1)
	assert.Contains(t, gaps[0].Issue, "50")
	assert.Contains(t, gaps[0].Issue, "60")
}

func TestEvaluate_ScoreAbsent(t *testing.T) {
	p := catalog.Product{}
	prof := profile.Profile{Rules: profile.Rules{MinSustainabilityScore: intPtr(60)}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	require.Len(t, gaps, 1)
	assert.Contains(t, gaps[0].Issue, "60")
}

func TestEvaluate_BannedMaterial(t *testing.T) {
	p := catalog.Product{Materials: []catalog.Material{{Name: "Contains Lead"}}}
	prof := profile.Profile{Rules: profile.Rules{BannedKeywords: []string{"Lead"}}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	require.Len(t, gaps, 1)
	assert.Contains(t, gaps[0].Issue, "Contains Lead")
}

func TestEvaluate_BannedMaterialCaseInsensitive(t *testing.T) {
	p := catalog.Product{Materials: []catalog.Material{{Name: "cadmium alloy"}}}
	prof := profile.Profile{Rules: profile.Rules{BannedKeywords: []string{"Cadmium"}}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	assert.Len(t, gaps, 1)
}

func TestEvaluate_BannedMaterials_OneGapPerMatchingMaterial(t *testing.T) {
	p := catalog.Product{Materials: []catalog.Material{
		{Name: "Lead Solder"},
		{Name: "Mercury Switch"},
		{Name: "Oak"},
	}}
	prof := profile.Profile{Rules: profile.Rules{BannedKeywords: []string{"Lead", "Mercury"}}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	require.Len(t, gaps, 2)
	assert.Contains(t, gaps[0].Issue, "Lead Solder")
	assert.Contains(t, gaps[1].Issue, "Mercury Switch")
}

func TestEvaluate_RequiredKeywords_AnyMatchSatisfies(t *testing.T) {
	p := catalog.Product{Materials: []catalog.Material{
		{Name: "Virgin Aluminium"},
		{Name: "Organic Cotton"},
	}}
	prof := profile.Profile{Rules: profile.Rules{RequiredKeywords: []string{"Recycled", "Cotton"}}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.True(t, compliant)
	assert.Empty(t, gaps)
}

func TestEvaluate_RequiredKeywords_NoMatchIsSingleGap(t *testing.T) {
	p := catalog.Product{Materials: []catalog.Material{{Name: "Steel"}}}
	prof := profile.Profile{Rules: profile.Rules{RequiredKeywords: []string{"Recycled", "Bamboo"}}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	require.Len(t, gaps, 1)
	assert.Contains(t, gaps[0].Issue, "Recycled")
	assert.Contains(t, gaps[0].Issue, "Bamboo")
}

func TestEvaluate_RegulationFlagNotDeclared(t *testing.T) {
	p := catalog.Product{
		Declarations: catalog.Declarations{RoHS: &catalog.RoHSDeclaration{Compliant: false}},
	}
	prof := profile.Profile{Regulations: []string{"RoHS"}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	require.Len(t, gaps, 1)
	assert.Equal(t, "RoHS", gaps[0].Regulation)
}

func TestEvaluate_UnknownRegulationIgnored(t *testing.T) {
	p := catalog.Product{}
	prof := profile.Profile{Regulations: []string{"ESPR", "Battery"}}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.True(t, compliant)
	assert.Empty(t, gaps)
}

// Violations accumulate: N independent rule violations produce exactly N
// gaps, never fewer through short-circuiting.
func TestEvaluate_ViolationsAccumulate(t *testing.T) {
	p := catalog.Product{
		SustainabilityScore: intPtr(10),
		Materials:           []catalog.Material{{Name: "Lead Plate"}},
		Declarations:        catalog.Declarations{},
	}
	prof := profile.Profile{
		Regulations: []string{"RoHS", "WEEE"},
		Rules: profile.Rules{
			MinSustainabilityScore: intPtr(60),
			BannedKeywords:         []string{"Lead"},
			RequiredKeywords:       []string{"Recycled"},
		},
	}

	compliant, gaps := newTestEvaluator().Evaluate(p, prof)

	assert.False(t, compliant)
	// score + banned + required + RoHS + WEEE
	assert.Len(t, gaps, 5)
}

func TestEvaluate_IsPureAndIdempotent(t *testing.T) {
	p := catalog.Product{
		SustainabilityScore: intPtr(42),
		Materials:           []catalog.Material{{Name: "Lead Foil"}, {Name: "Glass"}},
	}
	prof := profile.Profile{
		Regulations: []string{"RoHS", "REACH"},
		Rules: profile.Rules{
			MinSustainabilityScore: intPtr(50),
			BannedKeywords:         []string{"lead"},
			RequiredKeywords:       []string{"Recycled"},
		},
	}
	e := newTestEvaluator()

	first, firstGaps := e.Evaluate(p, prof)
	second, secondGaps := e.Evaluate(p, prof)

	assert.Equal(t, first, second)
	assert.Equal(t, firstGaps, secondGaps)
}

func TestEvaluate_CompliantIffNoGaps(t *testing.T) {
	cases := []struct {
		name string
		p    catalog.Product
		prof profile.Profile
	}{
		{name: "empty rules", p: catalog.Product{}, prof: profile.Profile{}},
		{
			name: "score violation",
			p:    catalog.Product{SustainabilityScore: intPtr(1)},
			prof: profile.Profile{Rules: profile.Rules{MinSustainabilityScore: intPtr(99)}},
		},
		{
			name: "regulation violation",
			p:    catalog.Product{},
			prof: profile.Profile{Regulations: []string{"EUDR"}},
		},
	}
	e := newTestEvaluator()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			compliant, gaps := e.Evaluate(tc.p, tc.prof)
			assert.Equal(t, len(gaps) == 0, compliant)
		})
	}
}
