package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "FRESH MILK", NormalizeName("  fresh milk "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "dairy", []string{"DAIRY"}},
		{"trims and uppercases", " dairy , Frozen ", []string{"DAIRY", "FROZEN"}},
		{"dedupes case variants", "dairy,DAIRY,Dairy", []string{"DAIRY"}},
		{"skips blank entries", "a,, ,b", []string{"A", "B"}},
		{"keeps first occurrence order", "z, a, z", []string{"Z", "A"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitList(tc.in))
		})
	}
}
