package models

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
)

// MutablePerson is a plain mutable record with no equality of its own.
// It is meant to be handled through *MutablePerson, where == compares
// identity: two distinct instances are never equal, whatever their fields.
type MutablePerson struct {
	// FirstName is the given name.
	FirstName string `json:"first_name"`
	// LastName is the family name.
	LastName string `json:"last_name"`
}

// Person is an immutable record with value semantics.
// Its fields are only reachable through accessors, and the struct is
// comparable, so == and map lookups compare the fields exactly (case-sensitive).
type Person struct {
	firstName string
	lastName  string
}

// NewPerson returns a Person with the given names.
func NewPerson(firstName, lastName string) Person {
	return Person{firstName: firstName, lastName: lastName}
}

// FirstName returns the given name.
func (p Person) FirstName() string { return p.firstName }

// LastName returns the family name.
func (p Person) LastName() string { return p.lastName }

// WithFirstName returns a copy of p with the given name replaced.
func (p Person) WithFirstName(firstName string) Person {
	p.firstName = firstName
	return p
}

// WithLastName returns a copy of p with the family name replaced.
func (p Person) WithLastName(lastName string) Person {
	p.lastName = lastName
	return p
}

// String implements fmt.Stringer.
func (p Person) String() string {
	return p.firstName + " " + p.lastName
}

// ValuePerson is a mutable record with hand-written value equality.
// Two instances are equal when their names match ignoring case, and Hash
// agrees with Equal.
type ValuePerson struct {
	// FirstName is the given name.
	FirstName string `json:"first_name"`
	// LastName is the family name.
	LastName string `json:"last_name"`
}

// ValueKey is the case-folded, comparable form of a ValuePerson.
type ValueKey struct {
	FirstName string
	LastName  string
}

// hashSeparator keeps ("ab", "c") and ("a", "bc") apart in Hash.
const hashSeparator = "\x00"

// fold returns s under Unicode case folding.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Key returns the folded key that Equal and Hash are defined over.
func (p *ValuePerson) Key() ValueKey {
	return ValueKey{FirstName: fold(p.FirstName), LastName: fold(p.LastName)}
}

// Equal reports whether p and other name the same person ignoring case.
// A nil receiver equals only a nil argument.
func (p *ValuePerson) Equal(other *ValuePerson) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return p.Key() == other.Key()
}

// Hash returns a hash over the folded names, so that
// p.Equal(q) implies p.Hash() == q.Hash().
func (p *ValuePerson) Hash() uint64 {
	if p == nil {
		return 0
	}
	k := p.Key()
	d := xxhash.New()
	d.WriteString(k.FirstName)
	d.WriteString(hashSeparator)
	d.WriteString(k.LastName)
	return d.Sum64()
}

// String implements fmt.Stringer.
func (p *ValuePerson) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.FirstName + " " + p.LastName
}
