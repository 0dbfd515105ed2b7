package verification

import "veripass/internal/catalog"

// Checker inspects one declaration sub-object and reports a gap when the
// product is not declared compliant for that regulation family.
type Checker func(d catalog.Declarations) *Gap

// Registry maps lower-cased regulation names to checkers. It is built once
// at startup and injected into the evaluator so tests can substitute it;
// nothing mutates it after construction.
type Registry map[string]Checker

// NewRegistry returns the checkers for the schema-backed regulation
// families. Profiles may reference other regulation names; those are
// ignored until the passport schema carries fields for them.
func NewRegistry() Registry {
	return Registry{
		"rohs":  checkRoHS,
		"reach": checkREACH,
		"weee":  checkWEEE,
		"eudr":  checkEUDR,
	}
}

func checkRoHS(d catalog.Declarations) *Gap {
	if d.RoHS == nil || !d.RoHS.Compliant {
		return &Gap{Regulation: "RoHS", Issue: "RoHS is not declared as compliant on the product record"}
	}
	return nil
}

func checkREACH(d catalog.Declarations) *Gap {
	if d.REACH == nil || !d.REACH.SVHCDeclared {
		return &Gap{Regulation: "REACH", Issue: "REACH is not declared as compliant: substances of very high concern are undeclared"}
	}
	return nil
}

func checkWEEE(d catalog.Declarations) *Gap {
	if d.WEEE == nil || !d.WEEE.Registered {
		return &Gap{Regulation: "WEEE", Issue: "WEEE is not declared as compliant: producer registration is missing"}
	}
	return nil
}

func checkEUDR(d catalog.Declarations) *Gap {
	if d.EUDR == nil || !d.EUDR.Compliant {
		return &Gap{Regulation: "EUDR", Issue: "EUDR is not declared as compliant on the product record"}
	}
	return nil
}
