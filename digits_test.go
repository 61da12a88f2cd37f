package bigint

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDigits(s string) digits {
	z := make(digits, len(s))
	for i := range s {
		z[i] = s[i] - '0'
	}
	return z
}

func TestNewDigitsFromUint64(t *testing.T) {
	tests := []struct {
		u    uint64
		want digits
	}{
		{0, digits{0}},
		{7, digits{7}},
		{10, digits{1, 0}},
		{math.MaxUint64, mustDigits("18446744073709551615")},
	}
	for _, tt := range tests {
		got := newDigitsFromUint64(tt.u)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("newDigitsFromUint64(%v) mismatch (-want +got):\n%s", tt.u, diff)
		}
	}
}

func TestDigits_trim(t *testing.T) {
	tests := []struct {
		x, want digits
	}{
		{nil, digits{0}},
		{digits{}, digits{0}},
		{digits{0}, digits{0}},
		{digits{0, 0, 0}, digits{0}},
		{digits{0, 0, 1, 0}, digits{1, 0}},
		{digits{5, 0}, digits{5, 0}},
	}
	for _, tt := range tests {
		got := tt.x.trim()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%v.trim() mismatch (-want +got):\n%s", tt.x, diff)
		}
	}
}

func TestDigits_uint64(t *testing.T) {
	tests := []struct {
		x      string
		want   uint64
		wantOk bool
	}{
		{"0", 0, true},
		{"123", 123, true},
		{"18446744073709551615", math.MaxUint64, true},
		{"18446744073709551616", 0, false},
		{"100000000000000000000", 0, false},
	}
	for _, tt := range tests {
		got, ok := mustDigits(tt.x).uint64()
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("%v.uint64() = (%v, %v), want (%v, %v)", tt.x, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestDigits_cmp(t *testing.T) {
	tests := []struct {
		x, y string
		want int
	}{
		{"0", "0", 0},
		{"9", "10", -1},
		{"10", "9", 1},
		{"123", "124", -1},
		{"124", "123", 1},
		{"98765", "98765", 0},
	}
	for _, tt := range tests {
		got := mustDigits(tt.x).cmp(mustDigits(tt.y))
		if got != tt.want {
			t.Errorf("%v.cmp(%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDigits_arithmetic(t *testing.T) {
	tests := []struct {
		x, y                      string
		sum, diff, prod, quo, rem string
	}{
		{"0", "1", "1", "1", "0", "0", "0"},
		{"1", "1", "2", "0", "1", "1", "0"},
		{"999", "1", "1000", "998", "999", "999", "0"},
		{"1000", "999", "1999", "1", "999000", "1", "1"},
		{"100000", "7", "100007", "99993", "700000", "14285", "5"},
		{"12345", "6789", "19134", "5556", "83810205", "1", "5556"},
		{"12345678901234567890123", "987654321", "12345678901235555544444", "12345678901233580235802", "12193263112482853211247834171483", "12499999887343", "740731020"},
	}
	for _, tt := range tests {
		x, y := mustDigits(tt.x), mustDigits(tt.y)

		if diff := cmp.Diff(mustDigits(tt.sum), x.add(y)); diff != "" {
			t.Errorf("%v.add(%v) mismatch (-want +got):\n%s", tt.x, tt.y, diff)
		}
		if diff := cmp.Diff(mustDigits(tt.diff), func() digits { z, _ := x.dist(y); return z }()); diff != "" {
			t.Errorf("%v.dist(%v) mismatch (-want +got):\n%s", tt.x, tt.y, diff)
		}
		if diff := cmp.Diff(mustDigits(tt.prod), x.mul(y)); diff != "" {
			t.Errorf("%v.mul(%v) mismatch (-want +got):\n%s", tt.x, tt.y, diff)
		}
		q, r := x.quoRem(y)
		if diff := cmp.Diff(mustDigits(tt.quo), q); diff != "" {
			t.Errorf("%v.quoRem(%v) quotient mismatch (-want +got):\n%s", tt.x, tt.y, diff)
		}
		if diff := cmp.Diff(mustDigits(tt.rem), r); diff != "" {
			t.Errorf("%v.quoRem(%v) remainder mismatch (-want +got):\n%s", tt.x, tt.y, diff)
		}
	}
}

func TestDigits_zeroNotShared(t *testing.T) {
	x := mustDigits("5")
	_, r := x.quoRem(mustDigits("5"))
	if diff := cmp.Diff(digits{0}, r); diff != "" {
		t.Errorf("5.quoRem(5) remainder mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(digits{0}, zeroDigits); diff != "" {
		t.Errorf("zeroDigits was modified (-want +got):\n%s", diff)
	}
}
