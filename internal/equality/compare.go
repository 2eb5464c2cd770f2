package equality

import "github.com/ShayCichocki/sheetsmith/pkg/models"

// Variant names a person model.
type Variant string

const (
	// VariantMutable is models.MutablePerson: identity equality only.
	VariantMutable Variant = "mutable"
	// VariantRecord is models.Person: structural, case-sensitive.
	VariantRecord Variant = "record"
	// VariantValue is models.ValuePerson: structural, case-insensitive.
	VariantValue Variant = "value"
)

// Variants lists the person models in display order.
var Variants = []Variant{VariantMutable, VariantRecord, VariantValue}

// Name is a first/last name pair used to build each variant.
type Name struct {
	First string
	Last  string
}

// Outcome is the result of comparing two operands of one variant.
type Outcome struct {
	Variant Variant
	// AliasSame is true when a reference copied from the left operand is
	// identical to it.
	AliasSame bool
	// Same is true when the two operands share identity.
	Same bool
	// Equal is the variant's own notion of equality.
	Equal bool
	// HashEqual is only meaningful for VariantValue.
	HashEqual bool
}

// Report holds one Outcome per variant.
type Report struct {
	Left     Name
	Right    Name
	Outcomes []Outcome
}

// Outcome returns the outcome for v.
func (r Report) Outcome(v Variant) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Variant == v {
			return o, true
		}
	}
	return Outcome{}, false
}

// Compare builds left and right as distinct instances of every variant and
// records how each equality rule treats them.
func Compare(left, right Name) Report {
	report := Report{Left: left, Right: right}

	m1 := &models.MutablePerson{FirstName: left.First, LastName: left.Last}
	m2 := &models.MutablePerson{FirstName: right.First, LastName: right.Last}
	mAlias := m1
	report.Outcomes = append(report.Outcomes, Outcome{
		Variant:   VariantMutable,
		AliasSame: Same(m1, mAlias),
		Same:      Same(m1, m2),
		Equal:     m1 == m2,
	})

	r1 := models.NewPerson(left.First, left.Last)
	r2 := models.NewPerson(right.First, right.Last)
	rp1, rp2 := &r1, &r2
	rAlias := rp1
	report.Outcomes = append(report.Outcomes, Outcome{
		Variant:   VariantRecord,
		AliasSame: Same(rp1, rAlias),
		Same:      Same(rp1, rp2),
		Equal:     r1 == r2,
	})

	v1 := &models.ValuePerson{FirstName: left.First, LastName: left.Last}
	v2 := &models.ValuePerson{FirstName: right.First, LastName: right.Last}
	vAlias := v1
	report.Outcomes = append(report.Outcomes, Outcome{
		Variant:   VariantValue,
		AliasSame: Same(v1, vAlias),
		Same:      Same(v1, v2),
		Equal:     v1.Equal(v2),
		HashEqual: v1.Hash() == v2.Hash(),
	})

	return report
}
