package players

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "son heung min", normalize("  Son Heung-min "))
	assert.Equal(t, "", normalize("--- "))
}

func TestFindFuzzyThreshold(t *testing.T) {
	r, err := NewRoster([]Player{
		{Name: "Erling Haaland", Nationality: "Norway", League: "Premier League", Club: "Manchester City", Position: "Forward", Age: 25},
		{Name: "Lionel Messi", Nationality: "Argentina", League: "MLS", Club: "Inter Miami", Position: "Forward", Age: 38},
		{Name: "Kylian Mbappe", Nationality: "France", League: "La Liga", Club: "Real Madrid", Position: "Forward", Age: 26},
		{Name: "Harry Kane", Nationality: "England", League: "Bundesliga", Club: "Bayern Munich", Position: "Forward", Age: 32},
	})
	require.NoError(t, err)

	tests := []struct {
		query string
		want  string // empty: no match
	}{
		{"messi", "Lionel Messi"},
		{"halland", "Erling Haaland"},
		{"mbape", "Kylian Mbappe"},
		{"Mbappe Kylian", "Kylian Mbappe"},
		{"HARRY KANE", "Harry Kane"},
		{"xyz", ""},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			p, ok := r.FindFuzzy(tc.query)
			if tc.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.want, p.Name)
		})
	}
}

func TestBestMatchScore(t *testing.T) {
	r, err := NewRoster(fixture())
	require.NoError(t, err)

	p, score := r.bestMatch("Lionel Messi")
	assert.Equal(t, "Lionel Messi", p.Name)
	assert.Equal(t, 100, score)

	_, score = r.bestMatch("zzzz")
	assert.LessOrEqual(t, score, FuzzyThreshold)
}

func TestBestMatchTieKeepsLoadOrder(t *testing.T) {
	r, err := NewRoster([]Player{
		{Name: "Ronaldo", Nationality: "Brazil", League: "Serie A", Club: "Inter", Position: "Forward", Age: 21},
		{Name: "Ronaldo!", Nationality: "Portugal", League: "Saudi Pro League", Club: "Al Nassr", Position: "Forward", Age: 40},
	})
	require.NoError(t, err)

	p, score := r.bestMatch("ronaldo")
	assert.Equal(t, 100, score)
	assert.Equal(t, "Brazil", p.Nationality)
}
