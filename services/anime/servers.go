package anime

import (
	"context"
	"encoding/json"
	"fmt"

	"aniflux/internal/scrape"
	"aniflux/models"
)

// serverEntry mirrors one entry of the upstream videos object.
type serverEntry struct {
	Server string `json:"server"`
	Code   string `json:"code"`
}

// Servers returns the subtitled video server list for one episode of an
// already-resolved anime. The upstream order is preserved untouched: the
// first server is the one the player auto-selects, so reordering would
// change user-visible behavior.
func (s *Service) Servers(ctx context.Context, slug, episode string) ([]models.VideoServer, error) {
	key := "videos:" + slug + ":" + episode
	if cached, ok := s.videoCache.Get(key); ok {
		return cached, nil
	}

	doc, err := s.pages.Document(ctx, s.baseURL+"/ver/"+slug+"-"+episode)
	if err != nil {
		return nil, err
	}

	raw, err := scrape.ExtractVar(doc, videosVar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoServers, err)
	}

	var tracks map[string][]serverEntry
	if err := json.Unmarshal(raw, &tracks); err != nil {
		return nil, fmt.Errorf("%w: decode videos object: %v", ErrNoServers, err)
	}

	entries := tracks[subtitledTrack]
	if len(entries) == 0 {
		return nil, ErrNoServers
	}

	servers := make([]models.VideoServer, 0, len(entries))
	for _, e := range entries {
		servers = append(servers, models.VideoServer{Name: e.Server, URL: e.Code})
	}

	s.videoCache.Set(key, servers)
	return servers, nil
}
