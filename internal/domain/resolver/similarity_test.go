package resolver

import (
	"math"
	"testing"
)

func TestSequenceRatio(t *testing.T) {
	cases := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "barcelona", b: "barcelona", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "", b: "barcelona", want: 0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "single typo", a: "barcelna", b: "barcelona", want: 16.0 / 17.0},
		{name: "symmetric", a: "barcelona", b: "barcelna", want: 16.0 / 17.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sequenceRatio(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("sequenceRatio(%q, %q): got=%v want=%v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestJaccardWords(t *testing.T) {
	cases := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "word order ignored", a: "utd manchester", b: "manchester utd", want: 1},
		{name: "partial overlap", a: "borussia monchengladbach", b: "b. monchengladbach", want: 1.0 / 3.0},
		{name: "no overlap", a: "real madrid", b: "bayern munchen", want: 0},
		{name: "empty side", a: "", b: "barcelona", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := jaccardWords(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("jaccardWords(%q, %q): got=%v want=%v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
