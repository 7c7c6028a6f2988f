package domain

// HospitalSystem identifies the clinical site a rotation is staffed at.
// The hospital-exclusivity invariant (see Grid.HospitalSystemsInBlock) is
// defined over this type: a resident may carry at most one non-OTHER
// HospitalSystem within any single block.
type HospitalSystem int

const (
	// OTHER covers rotations that do not participate in hospital-exclusivity
	// accounting at all (e.g. vacation, research).
	OTHER HospitalSystem = iota
	// UCSF is the home academic site.
	UCSF
	// ZSFG is Zuckerberg San Francisco General.
	ZSFG
	// VA is the Veterans Affairs site.
	VA
)

// String renders the HospitalSystem for logs and validator findings.
func (h HospitalSystem) String() string {
	switch h {
	case UCSF:
		return "UCSF"
	case ZSFG:
		return "ZSFG"
	case VA:
		return "VA"
	default:
		return "OTHER"
	}
}

// hospitalSystemOverrides holds rotation codes whose hospital system is not
// simply "whatever the catalog says" but must collapse to UCSF:
// "P"-prefixed rotations are payroll-equivalent to UCSF, not a
// separate system. This is a lookup table, not prefix arithmetic, so that
// adding an exception never requires touching call sites.
var hospitalSystemOverrides = map[string]HospitalSystem{}

// RegisterPayrollAlias marks code as payroll-equivalent to UCSF regardless of
// what hospital system the catalog entry otherwise names. Intended to be
// called once per "P"-prefixed code discovered in the rotation catalog
// (e.g. Pcbi, Pcmb) during catalog load.
func RegisterPayrollAlias(code string) {
	hospitalSystemOverrides[code] = UCSF
}

// HospitalSystemOf resolves the effective HospitalSystem for a rotation,
// applying the payroll-alias override table ahead of the catalog's own
// declared system. Pass declared from the catalog entry; it is returned
// unchanged when no override is registered for code.
func HospitalSystemOf(code string, declared HospitalSystem) HospitalSystem {
	if override, ok := hospitalSystemOverrides[code]; ok {
		return override
	}
	return declared
}
