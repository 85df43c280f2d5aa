package anime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aniflux/models"
)

func TestParseEpisodesAlreadyDescending(t *testing.T) {
	eps, err := ParseEpisodes(json.RawMessage(`[[25,"ep25id"],[1,"ep1id"]]`))
	require.NoError(t, err)
	require.Len(t, eps, 2)
	assert.Equal(t, json.Number("25"), eps[0].Number)
	assert.Equal(t, "ep25id", eps[0].ID)
	assert.Equal(t, json.Number("1"), eps[1].Number)
}

func TestParseEpisodesSortsUnorderedInput(t *testing.T) {
	permutations := []string{
		`[[1,"a"],[3,"c"],[2,"b"]]`,
		`[[2,"b"],[1,"a"],[3,"c"]]`,
		`[[3,"c"],[2,"b"],[1,"a"]]`,
	}
	for _, raw := range permutations {
		eps, err := ParseEpisodes(json.RawMessage(raw))
		require.NoError(t, err)
		require.Len(t, eps, 3)
		for i := 1; i < len(eps); i++ {
			assert.Greater(t, eps[i-1].NumberValue(), eps[i].NumberValue(),
				"episodes must be strictly descending for input %s", raw)
		}
	}
}

func TestParseEpisodesFractionalNumbers(t *testing.T) {
	eps, err := ParseEpisodes(json.RawMessage(`[[12,"a"],[13,"c"],[12.5,"b"]]`))
	require.NoError(t, err)
	require.Len(t, eps, 3)
	assert.Equal(t, json.Number("13"), eps[0].Number)
	assert.Equal(t, json.Number("12.5"), eps[1].Number)
	assert.Equal(t, json.Number("12"), eps[2].Number)
}

func TestParseEpisodesStringNumbers(t *testing.T) {
	eps, err := ParseEpisodes(json.RawMessage(`[["2","b"],["10","a"]]`))
	require.NoError(t, err)
	require.Len(t, eps, 2)
	// Numeric coercion, not lexical: "10" sorts above "2".
	assert.Equal(t, json.Number("10"), eps[0].Number)
}

func TestParseEpisodesNumericIDs(t *testing.T) {
	eps, err := ParseEpisodes(json.RawMessage(`[[2,49806],[1,49570]]`))
	require.NoError(t, err)
	assert.Equal(t, "49806", eps[0].ID)
	assert.Equal(t, "49570", eps[1].ID)
}

func TestParseEpisodesSkipsShortTuples(t *testing.T) {
	eps, err := ParseEpisodes(json.RawMessage(`[[5,"a"],[7],[3,"b"]]`))
	require.NoError(t, err)
	require.Len(t, eps, 2)
	assert.Equal(t, "a", eps[0].ID)
	assert.Equal(t, "b", eps[1].ID)
}

func TestParseEpisodesRejectsNonArray(t *testing.T) {
	_, err := ParseEpisodes(json.RawMessage(`{"not":"tuples"}`))
	assert.Error(t, err)
}

func TestSortEpisodesDescStable(t *testing.T) {
	eps := []models.Episode{
		{Number: "2", ID: "first-two"},
		{Number: "2", ID: "second-two"},
		{Number: "5", ID: "five"},
	}
	SortEpisodesDesc(eps)
	assert.Equal(t, "five", eps[0].ID)
	assert.Equal(t, "first-two", eps[1].ID)
	assert.Equal(t, "second-two", eps[2].ID)
}
