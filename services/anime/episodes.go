package anime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"aniflux/models"
)

// ParseEpisodes maps the raw `[[number, id], ...]` tuples embedded in an
// anime page into Episode records, sorted by descending episode number.
// Numbers pass through as json.Number so fractional specials ("12.5")
// survive; ids are coerced to strings whether the upstream quoted them
// or not.
func ParseEpisodes(raw json.RawMessage) ([]models.Episode, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tuples [][]any
	if err := dec.Decode(&tuples); err != nil {
		return nil, fmt.Errorf("decode episode tuples: %w", err)
	}

	episodes := make([]models.Episode, 0, len(tuples))
	for _, tuple := range tuples {
		if len(tuple) < 2 {
			continue
		}
		episodes = append(episodes, models.Episode{
			Number: toNumber(tuple[0]),
			ID:     toString(tuple[1]),
		})
	}

	SortEpisodesDesc(episodes)
	return episodes, nil
}

// SortEpisodesDesc orders episodes by descending numeric value. The sort
// is stable so equal numbers, which should not occur upstream, keep
// their relative order.
func SortEpisodesDesc(episodes []models.Episode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].NumberValue() > episodes[j].NumberValue()
	})
}

func toNumber(v any) json.Number {
	switch t := v.(type) {
	case json.Number:
		return t
	case string:
		return json.Number(t)
	default:
		return json.Number(fmt.Sprintf("%v", t))
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
