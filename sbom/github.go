package sbom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// --- GitHub Dependency Graph SBOM Fetching ---

// NewGitHubClient returns a GitHub API client, authenticated through the
// GITHUB_TOKEN environment variable when set.
func NewGitHubClient(ctx context.Context) *github.Client {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		log.Warnf("GITHUB_TOKEN environment variable not set, using unauthenticated access (may hit rate limits)")
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// GitHubFetcher fetches the dependency-graph SBOM of a repository, with an
// on-disk cache of the raw responses.
type GitHubFetcher struct {
	Client   *github.Client
	CacheDir string // empty disables caching
	NoCache  bool   // bypass the cache even if CacheDir is set
}

// SBOM fetches the SPDX SBOM that GitHub generates for owner/repo.
// The typed SBOM response in go-github doesn't carry the relationships
// section, so we decode the raw body into our own document type.
func (f *GitHubFetcher) SBOM(ctx context.Context, ownerRepo string) (*Document, error) {
	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid repository %q, expected owner/repo", ownerRepo)
	}
	useCache := !f.NoCache && f.CacheDir != ""
	key := cacheKey(f.CacheDir, "sbom", owner, repo)
	if data, hit := readCache(key, useCache); hit {
		doc, err := parseSBOMResponse(data)
		if err == nil {
			log.LogVf("Cache hit for %s SBOM", ownerRepo)
			return doc, nil
		}
		// Same policy as unreadable entries: a cache problem is a miss,
		// not a failed run. The refetch below overwrites the bad entry.
		log.Warnf("Cached SBOM for %s is unusable, refetching: %v", ownerRepo, err)
	}
	log.Infof("Fetching dependency-graph SBOM for %s from GitHub", ownerRepo)
	u := fmt.Sprintf("repos/%s/%s/dependency-graph/sbom", owner, repo)
	req, err := f.Client.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build SBOM request for %s: %w", ownerRepo, err)
	}
	var buf bytes.Buffer
	if _, err = f.Client.Do(ctx, req, &buf); err != nil {
		return nil, fmt.Errorf("failed to fetch SBOM for %s: %w", ownerRepo, err)
	}
	data := buf.Bytes()
	writeCache(key, data, useCache)
	return parseSBOMResponse(data)
}

// parseSBOMResponse unwraps the {"sbom": {...}} envelope of the
// dependency-graph endpoint.
func parseSBOMResponse(data []byte) (*Document, error) {
	var wrapper struct {
		SBOM *Document `json:"sbom"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode SBOM response: %w", err)
	}
	if wrapper.SBOM == nil {
		return nil, errors.New("SBOM response has no sbom field")
	}
	return wrapper.SBOM, nil
}

// --- End GitHub Dependency Graph SBOM Fetching ---
