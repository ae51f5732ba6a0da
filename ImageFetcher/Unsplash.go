package ImageFetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"IconForge/Database"

	log "github.com/sirupsen/logrus"
)

type UnsplashPhoto struct {
	ID          string       `json:"id"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Description string       `json:"description"`
	Urls        UnsplashUrls `json:"urls"`
}

type UnsplashUrls struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type UnsplashSearchResult struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []UnsplashPhoto `json:"results"`
}

// search runs one photo search. A non-200 answer is not an error: it is logged
// and reported through ok=false.
func (f *Fetcher) search(ctx context.Context, theme string, batchSize int) (result UnsplashSearchResult, ok bool, err error) {
	cacheKey := Database.SearchCacheKey(theme, batchSize)
	if f.Cache != nil {
		body, hit, cacheErr := f.Cache.Get(ctx, cacheKey)
		if cacheErr != nil {
			log.Warn("Search cache lookup failed: ", cacheErr)
		}
		if hit {
			if jsonErr := json.Unmarshal(body, &result); jsonErr == nil {
				log.Info("Using cached search results for theme: ", theme)
				return result, true, nil
			}
			log.Warn("Discarding undecodable cached search results for theme: ", theme)
		}
	}

	qParam := url.Values{}
	qParam.Add("query", theme)
	qParam.Add("client_id", f.AccessKey)
	qParam.Add("per_page", strconv.Itoa(batchSize))
	searchURL := strings.TrimSuffix(f.BaseURL, "/") + "/search/photos?" + qParam.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return result, false, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("User-Agent", UserAgent)

	res, err := f.client().Do(req)
	if err != nil {
		return result, false, fmt.Errorf("searching unsplash: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Errorf("Failed to get images for theme '%s' from Unsplash API. Status code: %d", theme, res.StatusCode)
		return result, false, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return result, false, fmt.Errorf("reading search response: %w", err)
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, false, fmt.Errorf("decoding search response: %w", err)
	}

	if f.Cache != nil {
		if err := f.Cache.Set(ctx, cacheKey, body); err != nil {
			log.Warn("Failed to cache search results: ", err)
		}
	}

	return result, true, nil
}
