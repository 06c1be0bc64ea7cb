package version

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"1.2.3", Version{Major: 1, Minor: 2, Patch: 3}},
		{"v1.2.3", Version{Major: 1, Minor: 2, Patch: 3}},
		{"v0.0.0", Version{}},
		{"v2.0.0-beta.1", Version{Major: 2, Prerelease: "beta.1"}},
		{"1.2.3-relchan", Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "relchan"}},
		{"1.2.3+build.7", Version{Major: 1, Minor: 2, Patch: 3, Metadata: "build.7"}},
		{"10.20.30-rc.1+sha.abc", Version{Major: 10, Minor: 20, Patch: 30, Prerelease: "rc.1", Metadata: "sha.abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"v",
		"1.2",
		"1.2.3.4",
		"vv1.2.3",
		"V1.2.3",
		"1.2.x",
		" 1.2.3",
		"1.2.3-",
		"1.2.3+",
		"1.2.3-beta_1",
		"a.b.c",
		"99999999999999999999.0.0",
	}

	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
			assert.False(t, IsValid(input))
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, major := range []uint64{0, 1, 9, 10, 123} {
		for _, minor := range []uint64{0, 4, 99} {
			for _, patch := range []uint64{0, 1, 1000} {
				got, err := Parse(Format(major, minor, patch))
				require.NoError(t, err)
				assert.Equal(t, Version{Major: major, Minor: minor, Patch: patch}, got)
			}
		}
	}
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "v1.2.3", MustParse("1.2.3").String())
	assert.Equal(t, "v1.2.3-rc.1+meta", MustParse("v1.2.3-rc.1+meta").String())
	assert.Equal(t, "1.2.3", MustParse("v1.2.3-rc.1").Core())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"v1.2.3", "1.2.3", 0},
		{"2.0.0-beta", "2.0.0", 0},
		{"1.2.3+build", "1.2.3-rc.1", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.3.0", "1.2.9", 1},
		{"2.0.0", "1.99.99", 1},
		{"0.9.0", "0.10.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got, err := CompareStrings(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			reverse, err := CompareStrings(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, -tt.want, reverse)
		})
	}
}

func TestCompareStrings_Invalid(t *testing.T) {
	_, err := CompareStrings("1.2", "1.2.3")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = CompareStrings("1.2.3", "latest")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNext(t *testing.T) {
	tests := []struct {
		input string
		kind  Bump
		want  string
	}{
		{"v1.4.9", BumpPatch, "v1.4.10"},
		{"v1.4.9", BumpMinor, "v1.5.0"},
		{"v1.4.9", BumpMajor, "v2.0.0"},
		{"v1.2.3-relchan", BumpPatch, "v1.2.4"},
		{"v1.2.3-rc.1+meta", BumpMinor, "v1.3.0"},
		{"0.0.0", BumpPatch, "v0.0.1"},
		{"v1.2.3-beta", BumpNone, "v1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.input+" "+tt.kind.String(), func(t *testing.T) {
			got := Next(MustParse(tt.input), tt.kind)
			assert.Equal(t, tt.want, got.String())
			assert.Empty(t, got.Prerelease)
			assert.Empty(t, got.Metadata)
		})
	}
}

func TestClassifyBump(t *testing.T) {
	tests := []struct {
		current, candidate string
		want               Bump
	}{
		{"v1.2.3", "v1.2.4", BumpPatch},
		{"v1.2.3", "v1.3.0", BumpMinor},
		{"v1.2.3", "v2.0.0", BumpMajor},
		{"v1.2.3", "v1.2.3", BumpNone},
		{"v1.2.3", "v1.4.0", BumpNone},
		{"v1.2.3", "v1.2.5", BumpNone},
		{"v1.2.3", "v1.3.1", BumpNone},
		{"v1.2.3", "v2.0.1", BumpNone},
		{"v1.2.3", "v2.1.0", BumpNone},
		{"v1.2.3", "v1.2.2", BumpNone},
		{"v1.2.3-relchan", "v1.2.4", BumpPatch},
	}

	for _, tt := range tests {
		t.Run(tt.current+" -> "+tt.candidate, func(t *testing.T) {
			got := ClassifyBump(MustParse(tt.current), MustParse(tt.candidate))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBump(t *testing.T) {
	for _, s := range []string{"patch", "Minor", " MAJOR "} {
		_, err := ParseBump(s)
		assert.NoError(t, err, s)
	}

	got, err := ParseBump("minor")
	require.NoError(t, err)
	assert.Equal(t, BumpMinor, got)

	_, err = ParseBump("none")
	assert.Error(t, err)
}
