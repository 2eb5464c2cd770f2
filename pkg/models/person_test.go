package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMutablePerson_SameReference(t *testing.T) {
	person1 := &MutablePerson{FirstName: "John", LastName: "Doe"}
	person2 := person1

	assert.Same(t, person1, person2)
	assert.True(t, person1 == person2)
}

func TestMutablePerson_DistinctInstancesAreNotEqual(t *testing.T) {
	person1 := &MutablePerson{FirstName: "John", LastName: "Doe"}
	person2 := &MutablePerson{FirstName: "John", LastName: "Doe"}

	assert.NotSame(t, person1, person2)
	assert.False(t, person1 == person2, "distinct pointers must not compare equal")

	// Mutation through one reference is visible through the other only when
	// they share identity.
	alias := person1
	alias.FirstName = "Jane"
	assert.Equal(t, "Jane", person1.FirstName)
	assert.Equal(t, "John", person2.FirstName)
}

func TestPerson_SameReference(t *testing.T) {
	person1 := &Person{firstName: "John", lastName: "Doe"}
	person2 := person1

	assert.Same(t, person1, person2)
	assert.Equal(t, *person1, *person2)
}

func TestPerson_DistinctInstancesAreEqual(t *testing.T) {
	person1 := NewPerson("John", "Doe")
	person2 := NewPerson("John", "Doe")

	assert.True(t, person1 == person2)
	assert.Equal(t, person1, person2)

	seen := map[Person]bool{person1: true}
	assert.True(t, seen[person2], "equal records must share a map key")
}

func TestPerson_EqualityIsCaseSensitive(t *testing.T) {
	person1 := NewPerson("John", "Doe")
	person2 := NewPerson("john", "doe")

	assert.False(t, person1 == person2)
	assert.NotEqual(t, person1, person2)
}

func TestPerson_WithCopies(t *testing.T) {
	original := NewPerson("John", "Doe")
	renamed := original.WithFirstName("Jane")

	assert.Equal(t, "John", original.FirstName())
	assert.Equal(t, "Jane", renamed.FirstName())
	assert.Equal(t, "Doe", renamed.LastName())
	assert.Equal(t, original, renamed.WithFirstName("John"))
	assert.Equal(t, "Jane Smith", renamed.WithLastName("Smith").String())
}

func TestValuePerson_SameReference(t *testing.T) {
	person1 := &ValuePerson{FirstName: "John", LastName: "Doe"}
	person2 := person1

	assert.Same(t, person1, person2)
	assert.True(t, person1.Equal(person2))
}

func TestValuePerson_DistinctInstancesAreEqual(t *testing.T) {
	person1 := &ValuePerson{FirstName: "John", LastName: "Doe"}
	person2 := &ValuePerson{FirstName: "John", LastName: "Doe"}

	assert.NotSame(t, person1, person2)
	assert.True(t, person1.Equal(person2))
	assert.Equal(t, person1.Hash(), person2.Hash())
}

func TestValuePerson_EqualityIsCaseInsensitive(t *testing.T) {
	person1 := &ValuePerson{FirstName: "John", LastName: "Doe"}
	person2 := &ValuePerson{FirstName: "john", LastName: "doe"}

	assert.True(t, person1.Equal(person2))
	assert.True(t, person2.Equal(person1))
	assert.Equal(t, person1.Hash(), person2.Hash())
	assert.Equal(t, person1.Key(), person2.Key())

	// cmp.Equal picks up the Equal method.
	if !cmp.Equal(person1, person2) {
		t.Errorf("cmp.Equal(%v, %v) = false, want true", person1, person2)
	}
}

func TestValuePerson_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *ValuePerson
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil receiver", nil, &ValuePerson{FirstName: "John"}, false},
		{"nil argument", &ValuePerson{FirstName: "John"}, nil, false},
		{"upper case", &ValuePerson{"John", "Doe"}, &ValuePerson{"JOHN", "DOE"}, true},
		{"different first name", &ValuePerson{"John", "Doe"}, &ValuePerson{"Jane", "Doe"}, false},
		{"different last name", &ValuePerson{"John", "Doe"}, &ValuePerson{"John", "Roe"}, false},
		{"accented letters fold", &ValuePerson{"Ærø", "Éclair"}, &ValuePerson{"ærø", "éclair"}, true},
		{"greek sigma folds", &ValuePerson{"ΣΟΦΙΑ", "Doe"}, &ValuePerson{"σοφια", "doe"}, true},
		{"empty names", &ValuePerson{}, &ValuePerson{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if tt.want && tt.a.Hash() != tt.b.Hash() {
				t.Errorf("equal values hash differently: %d vs %d", tt.a.Hash(), tt.b.Hash())
			}
		})
	}
}

func TestValuePerson_HashSeparatesFields(t *testing.T) {
	a := &ValuePerson{FirstName: "ab", LastName: "c"}
	b := &ValuePerson{FirstName: "a", LastName: "bc"}

	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestValuePerson_MutationChangesEquality(t *testing.T) {
	person1 := &ValuePerson{FirstName: "John", LastName: "Doe"}
	person2 := &ValuePerson{FirstName: "John", LastName: "Doe"}

	person2.LastName = "Roe"
	assert.False(t, person1.Equal(person2))
}
