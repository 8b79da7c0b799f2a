package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 7, 7},
		{"42", 7, 42},
		{"-3", 7, -3},
		{"abc", 7, 7},
		{"4.2", 7, 7},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("AtoiDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, size, max    int
		wantPage, wantSize int
	}{
		{1, 20, 100, 1, 20},
		{0, 20, 100, 1, 20},
		{-5, 0, 100, 1, 1},
		{2, 500, 100, 2, 100},
		{2, 500, 0, 2, 500}, // max <= 0 disables the cap
	}
	for _, tc := range cases {
		p, s := ClampPage(tc.page, tc.size, tc.max)
		if p != tc.wantPage || s != tc.wantSize {
			t.Errorf("ClampPage(%d,%d,%d) = (%d,%d), want (%d,%d)",
				tc.page, tc.size, tc.max, p, s, tc.wantPage, tc.wantSize)
		}
	}
}
