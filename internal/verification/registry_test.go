package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veripass/internal/catalog"
)

func TestRegistry_SchemaBackedFamilies(t *testing.T) {
	registry := NewRegistry()

	for _, name := range []string{"rohs", "reach", "weee", "eudr"} {
		assert.Contains(t, registry, name)
	}
	assert.Len(t, registry, 4)
}

func TestRegistry_Checkers(t *testing.T) {
	registry := NewRegistry()

	cases := []struct {
		name       string
		regulation string
		declared   catalog.Declarations
		undeclared catalog.Declarations
	}{
		{
			name:       "RoHS",
			regulation: "rohs",
			declared:   catalog.Declarations{RoHS: &catalog.RoHSDeclaration{Compliant: true}},
			undeclared: catalog.Declarations{RoHS: &catalog.RoHSDeclaration{Compliant: false}},
		},
		{
			name:       "REACH",
			regulation: "reach",
			declared:   catalog.Declarations{REACH: &catalog.REACHDeclaration{SVHCDeclared: true}},
			undeclared: catalog.Declarations{REACH: &catalog.REACHDeclaration{SVHCDeclared: false}},
		},
		{
			name:       "WEEE",
			regulation: "weee",
			declared:   catalog.Declarations{WEEE: &catalog.WEEEDeclaration{Registered: true}},
			undeclared: catalog.Declarations{WEEE: &catalog.WEEEDeclaration{Registered: false}},
		},
		{
			name:       "EUDR",
			regulation: "eudr",
			declared:   catalog.Declarations{EUDR: &catalog.EUDRDeclaration{Compliant: true}},
			undeclared: catalog.Declarations{EUDR: &catalog.EUDRDeclaration{Compliant: false}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := registry[tc.regulation]

			assert.Nil(t, checker(tc.declared), "declared compliant must produce no gap")

			gap := checker(tc.undeclared)
			require.NotNil(t, gap, "false flag must produce a gap")
			assert.Equal(t, tc.name, gap.Regulation)
			assert.Contains(t, gap.Issue, tc.name)

			absent := checker(catalog.Declarations{})
			require.NotNil(t, absent, "absent sub-object must produce a gap")
			assert.Equal(t, tc.name, absent.Regulation)
		})
	}
}
