package split

import (
	"math"
	"reflect"
	"testing"
)

func nasiGorengReceipt() ReceiptData {
	return NewReceipt(
		"Warung Tekko",
		[]MenuItem{{ID: "1", Name: "Nasi Goreng", Price: 25000, Quantity: 2}},
		50000, 5000, 0, 55000,
	)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		receipt      ReceiptData
		assignments  Assignments
		people       []Person
		validateFunc func(t *testing.T, calc SplitCalculation)
	}{
		{
			name:        "item shared by two people",
			receipt:     nasiGorengReceipt(),
			assignments: Assignments{"1": {"a", "b"}},
			people:      []Person{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
			validateFunc: func(t *testing.T, calc SplitCalculation) {
				for _, b := range calc.PerPersonBreakdown {
					if b.Subtotal != 25000 {
						t.Errorf("%s subtotal = %v, want 25000", b.Person.Name, b.Subtotal)
					}
					if b.TaxAmount != 2500 {
						t.Errorf("%s tax = %v, want 2500", b.Person.Name, b.TaxAmount)
					}
					if b.Total != 27500 {
						t.Errorf("%s total = %v, want 27500", b.Person.Name, b.Total)
					}
				}
				if calc.Subtotal != 50000 || calc.Tax != 5000 || calc.Total != 55000 {
					t.Errorf("aggregate = %v/%v/%v, want 50000/5000/55000",
						calc.Subtotal, calc.Tax, calc.Total)
				}
			},
		},
		{
			name:        "item assigned to one person only",
			receipt:     nasiGorengReceipt(),
			assignments: Assignments{"1": {"a"}},
			people:      []Person{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
			validateFunc: func(t *testing.T, calc SplitCalculation) {
				alice, bob := calc.PerPersonBreakdown[0], calc.PerPersonBreakdown[1]
				if alice.Subtotal != 50000 || alice.TaxAmount != 5000 {
					t.Errorf("Alice = %v + %v, want 50000 + 5000", alice.Subtotal, alice.TaxAmount)
				}
				if bob.Subtotal != 0 || bob.TaxAmount != 0 || bob.Total != 0 {
					t.Errorf("Bob = %v/%v/%v, want all zero", bob.Subtotal, bob.TaxAmount, bob.Total)
				}
			},
		},
		{
			name: "tax and service charge distributed independently",
			receipt: NewReceipt("Warung Tekko",
				[]MenuItem{
					{ID: "1", Name: "Pizza", Price: 20000, Quantity: 1},
					{ID: "2", Name: "Salad", Price: 10000, Quantity: 1},
				},
				30000, 3000, 1500, 34500,
			),
			assignments: Assignments{"1": {"a", "b"}, "2": {"a"}},
			people:      []Person{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
			validateFunc: func(t *testing.T, calc SplitCalculation) {
				// Alice: 20000, charges 2000 + 1000; Bob: 10000, charges 1000 + 500.
				alice, bob := calc.PerPersonBreakdown[0], calc.PerPersonBreakdown[1]
				if math.Abs(alice.TaxAmount-3000) > 1e-9 {
					t.Errorf("Alice charge amount = %v, want 3000", alice.TaxAmount)
				}
				if math.Abs(bob.TaxAmount-1500) > 1e-9 {
					t.Errorf("Bob charge amount = %v, want 1500", bob.TaxAmount)
				}
				wantShares := []ChargeShare{
					{Name: ChargeTax, Amount: 2000},
					{Name: ChargeService, Amount: 1000},
				}
				if !reflect.DeepEqual(alice.ChargeShares, wantShares) {
					t.Errorf("Alice charge shares = %v, want %v", alice.ChargeShares, wantShares)
				}
				if math.Abs(calc.Total-34500) > 1e-9 {
					t.Errorf("total = %v, want 34500", calc.Total)
				}
			},
		},
		{
			name:        "no people",
			receipt:     nasiGorengReceipt(),
			assignments: Assignments{},
			people:      nil,
			validateFunc: func(t *testing.T, calc SplitCalculation) {
				if calc.Subtotal != 0 || calc.Tax != 0 || calc.Total != 0 {
					t.Errorf("empty input should yield zeroes, got %+v", calc)
				}
				if len(calc.PerPersonBreakdown) != 0 {
					t.Errorf("breakdown should be empty, got %d entries", len(calc.PerPersonBreakdown))
				}
			},
		},
		{
			name:        "nothing assigned yet: zero tax for everyone, no NaN",
			receipt:     nasiGorengReceipt(),
			assignments: Assignments{},
			people:      []Person{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
			validateFunc: func(t *testing.T, calc SplitCalculation) {
				for _, b := range calc.PerPersonBreakdown {
					if b.TaxAmount != 0 {
						t.Errorf("%s tax = %v, want 0", b.Person.Name, b.TaxAmount)
					}
					if math.IsNaN(b.Total) || math.IsInf(b.Total, 0) {
						t.Errorf("%s total is not finite: %v", b.Person.Name, b.Total)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			people := Allocate(tt.receipt.Items, tt.assignments, tt.people)
			calc := Calculate(tt.receipt, people)
			tt.validateFunc(t, calc)
		})
	}
}

func TestCalculateProportionality(t *testing.T) {
	receipt := NewReceipt("Warung Tekko",
		[]MenuItem{
			{ID: "1", Name: "Pizza", Price: 30000, Quantity: 1},
			{ID: "2", Name: "Pasta", Price: 30000, Quantity: 1},
			{ID: "3", Name: "Tiramisu", Price: 15000, Quantity: 1},
		},
		75000, 8250, 0, 83250,
	)
	people := Allocate(receipt.Items, Assignments{
		"1": {"a"},
		"2": {"b"},
		"3": {"c"},
	}, []Person{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	calc := Calculate(receipt, people)

	// Equal subtotals pay equal tax.
	a, b := calc.PerPersonBreakdown[0], calc.PerPersonBreakdown[1]
	if a.TaxAmount != b.TaxAmount {
		t.Errorf("equal subtotals got unequal tax: %v vs %v", a.TaxAmount, b.TaxAmount)
	}

	// taxAmount / subtotal is constant across nonzero subtotals.
	wantRate := 8250.0 / 75000.0
	for _, bd := range calc.PerPersonBreakdown {
		rate := bd.TaxAmount / bd.Subtotal
		if math.Abs(rate-wantRate) > 1e-12 {
			t.Errorf("tax rate for %s = %v, want %v", bd.Person.ID, rate, wantRate)
		}
	}
}

func TestCalculateIdempotent(t *testing.T) {
	receipt := nasiGorengReceipt()
	people := Allocate(receipt.Items, Assignments{"1": {"a", "b"}},
		[]Person{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}})

	first := Calculate(receipt, people)
	second := Calculate(receipt, people)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different outputs")
	}
}
