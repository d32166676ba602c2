package cmp_test

import (
	"testing"

	"github.com/ems-iodt/twinscale-api-types/internal/utils/cmp"
)

type Int int

func (t Int) Equal(other Int) bool {
	return t == other
}

func TestSliceEqual(t *testing.T) {

	type When struct {
		A []Int
		B []Int
	}
	type Then struct {
		Want bool
	}

	theory := func(when When, then Then) func(t *testing.T) {
		return func(t *testing.T) {
			got := cmp.SliceEqual(when.A, when.B)
			if got != then.Want {
				t.Errorf("got %v, want %v", got, then.Want)
			}
		}
	}

	t.Run("when A and B are empty", theory(
		When{A: []Int{}, B: []Int{}},
		Then{Want: true},
	))
	t.Run("when A and B are the same", theory(
		When{A: []Int{Int(1), Int(2), Int(3)}, B: []Int{Int(1), Int(2), Int(3)}},
		Then{Want: true},
	))
	t.Run("when A and B hold the same elements in different order", theory(
		When{A: []Int{Int(1), Int(2), Int(3)}, B: []Int{Int(3), Int(2), Int(1)}},
		Then{Want: false},
	))
	t.Run("when A and B are different", theory(
		When{A: []Int{Int(1), Int(2), Int(3)}, B: []Int{Int(1), Int(2), Int(4)}},
		Then{Want: false},
	))
	t.Run("when A and B have different length (B is shorter)", theory(
		When{A: []Int{Int(1), Int(2), Int(3)}, B: []Int{Int(1), Int(2)}},
		Then{Want: false},
	))
	t.Run("when A and B have different length (A is shorter)", theory(
		When{A: []Int{Int(1), Int(2)}, B: []Int{Int(1), Int(2), Int(3)}},
		Then{Want: false},
	))
}

func TestPointerEqual(t *testing.T) {
	type When struct {
		A *Int
		B *Int
	}
	type Then struct {
		Want bool
	}

	theory := func(when When, then Then) func(t *testing.T) {
		return func(t *testing.T) {
			got := cmp.PointerEqual(when.A, when.B)
			if got != then.Want {
				t.Errorf("got %v, want %v", got, then.Want)
			}
		}
	}

	one, anotherOne, two := Int(1), Int(1), Int(2)

	t.Run("when A and B are nil", theory(
		When{A: nil, B: nil},
		Then{Want: true},
	))
	t.Run("when only A is nil", theory(
		When{A: nil, B: &one},
		Then{Want: false},
	))
	t.Run("when only B is nil", theory(
		When{A: &one, B: nil},
		Then{Want: false},
	))
	t.Run("when A and B point at equal values", theory(
		When{A: &one, B: &anotherOne},
		Then{Want: true},
	))
	t.Run("when A and B point at different values", theory(
		When{A: &one, B: &two},
		Then{Want: false},
	))
}

func TestDerefEqual(t *testing.T) {
	type When struct {
		A *string
		B *string
	}
	type Then struct {
		Want bool
	}

	theory := func(when When, then Then) func(t *testing.T) {
		return func(t *testing.T) {
			got := cmp.DerefEqual(when.A, when.B)
			if got != then.Want {
				t.Errorf("got %v, want %v", got, then.Want)
			}
		}
	}

	foo, alsoFoo, bar := "foo", "foo", "bar"

	t.Run("when A and B are nil", theory(
		When{A: nil, B: nil},
		Then{Want: true},
	))
	t.Run("when only one side is nil", theory(
		When{A: &foo, B: nil},
		Then{Want: false},
	))
	t.Run("when A and B point at equal values", theory(
		When{A: &foo, B: &alsoFoo},
		Then{Want: true},
	))
	t.Run("when A and B point at different values", theory(
		When{A: &foo, B: &bar},
		Then{Want: false},
	))
}
