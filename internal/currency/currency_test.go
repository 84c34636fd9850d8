package currency

import (
	"reflect"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{25000, "Rp 25.000"},
		{1234567.4, "Rp 1.234.567"},
		{999.5, "Rp 1.000"},
		{0, "Rp 0"},
	}
	for _, tt := range tests {
		if got := Format(tt.amount); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(27500, 55000); got != 50 {
		t.Errorf("Percentage = %v, want 50", got)
	}
	if got := Percentage(100, 0); got != 0 {
		t.Errorf("Percentage with zero total = %v, want 0", got)
	}
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		amount int64
		n      int
		want   []int64
	}{
		{10, 3, []int64{4, 3, 3}},
		{9, 3, []int64{3, 3, 3}},
		{55000, 2, []int64{27500, 27500}},
		{1, 4, []int64{1, 0, 0, 0}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := SplitEqually(tt.amount, tt.n)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitEqually(%d, %d) = %v, want %v", tt.amount, tt.n, got, tt.want)
		}

		var sum int64
		for _, part := range got {
			sum += part
		}
		if tt.n > 0 && sum != tt.amount {
			t.Errorf("SplitEqually(%d, %d) parts sum to %d", tt.amount, tt.n, sum)
		}
	}
}
