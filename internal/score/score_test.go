package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEmptyText(t *testing.T) {
	result := Score("")

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Found)
	assert.Len(t, result.Missing, 5)
	assert.Len(t, result.Suggestions, 5)
}

func TestScoreNoKeywordsNoPowerWords(t *testing.T) {
	result := Score("lorem ipsum dolor sit amet")

	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Suggestions, 5)
}

func TestScoreAllSectionsFound(t *testing.T) {
	text := "I was an intern and developer, built in python and sql, has a degree from university, email contact, won an award"
	result := Score(text)

	assert.ElementsMatch(t, []string{"contact", "education", "experience", "skills", "achievements"}, result.Found)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 100, result.Score)
}

func TestScoreClampedAt100(t *testing.T) {
	// All five sections plus a power word: 5*20 + 5 = 105, clamped.
	text := "email degree intern python award developed"
	result := Score(text)

	assert.Equal(t, 100, result.Score)
}

func TestScoreCaseInsensitive(t *testing.T) {
	lower := "email degree intern python award developed"
	upper := strings.ToUpper(lower)

	assert.Equal(t, Score(lower), Score(upper))
}

func TestScoreSingleSection(t *testing.T) {
	result := Score("completed a bachelor at some school")

	assert.Equal(t, 20, result.Score)
	assert.Equal(t, []string{"education"}, result.Found)
	assert.Len(t, result.Missing, 4)
	assert.Len(t, result.Suggestions, 4)
}

func TestScorePowerWordBonus(t *testing.T) {
	withBonus := Score("has a degree, developed things")
	withoutBonus := Score("has a degree")

	assert.Equal(t, withoutBonus.Score+5, withBonus.Score)
	require.NotEmpty(t, withBonus.Suggestions)
	assert.Contains(t, withBonus.Suggestions[len(withBonus.Suggestions)-1], "power words")
}

func TestScorePowerWordDoesNotChangeSections(t *testing.T) {
	result := Score("lead implemented designed")

	assert.Equal(t, 5, result.Score)
	assert.Empty(t, result.Found)
	assert.Len(t, result.Missing, 5)
}

func TestScoreAlwaysInRange(t *testing.T) {
	inputs := []string{
		"",
		"email phone linkedin github bachelor master degree university college intern experience project developer engineer python java sql html css javascript award certification hackathon scholarship lead developed implemented designed analyzed",
		"zzzzz",
		strings.Repeat("developed ", 1000),
	}
	for _, text := range inputs {
		result := Score(text)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
	}
}

func TestScoreOrderIndependent(t *testing.T) {
	a := Score("python degree email")
	b := Score("email python degree")

	assert.Equal(t, a.Score, b.Score)
	assert.ElementsMatch(t, a.Found, b.Found)
}
