package textmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatcher_FirstMatch(t *testing.T) {
	req := require.New(t)

	matcher, err := New([]string{"chest indrawing", "not breathing", "blue lips"})
	req.NoError(err)

	cases := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"exact phrase", "the baby has chest indrawing", "chest indrawing", true},
		{"case insensitive", "Blue Lips and crying", "blue lips", true},
		{"punctuation ignored", "chest in-drawing when breathing", "chest indrawing", true},
		{"spacing ignored", "notbreathing at all", "not breathing", true},
		{"no match", "baby is feeding well", "", false},
		{"empty text", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := matcher.FirstMatch(tc.text)
			require.Equal(t, tc.found, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMatcher_Matches_Deduplicates(t *testing.T) {
	req := require.New(t)

	matcher, err := New([]string{"fever", "vomiting"})
	req.NoError(err)

	got := matcher.Matches("fever in the morning, fever at night, vomiting too")

	req.Len(got, 2)
	req.Contains(got, "fever")
	req.Contains(got, "vomiting")
}

func TestMatcher_MatchesAny(t *testing.T) {
	req := require.New(t)

	matcher, err := New([]string{"seizure"})
	req.NoError(err)

	req.True(matcher.MatchesAny("she had a Seizure!"))
	req.False(matcher.MatchesAny("she is sleeping"))
}

func TestMatcher_SkipsEmptyPatterns(t *testing.T) {
	req := require.New(t)

	matcher, err := New([]string{"   ", "fever"})
	req.NoError(err)

	req.True(matcher.MatchesAny("high fever tonight"))
}
