package sbom

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"
)

// --- Cache Handling Functions ---
// Fetched SBOMs are cached as raw JSON on disk so repeated runs against the
// same repository don't burn API quota.

// DefaultCacheDir sets up and returns the cache directory path.
func DefaultCacheDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	cacheDir := filepath.Join(userCacheDir, "sbomdeps")
	log.LogVf("Using cache directory: %s", cacheDir)
	return cacheDir, os.MkdirAll(cacheDir, 0755)
}

// cacheKey generates a filename for the cache based on input parameters.
func cacheKey(cacheDir string, parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		io.WriteString(h, p)
		io.WriteString(h, "|") // Separator
	}
	hash := fmt.Sprintf("%x", h.Sum(nil))
	return filepath.Join(cacheDir, hash+".json")
}

// readCache returns the cached payload for key, if any. Unreadable or
// missing entries are cache misses, never errors.
func readCache(key string, useCache bool) ([]byte, bool) {
	if !useCache {
		return nil, false
	}
	data, err := os.ReadFile(key)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Error reading cache file %s, ignoring cache: %v", key, err)
		}
		return nil, false
	}
	log.LogVf("Cache hit: %s", key)
	return data, true
}

// writeCache stores a payload under key. Failures are logged, not fatal:
// the data was already fetched and the run can proceed without the cache.
func writeCache(key string, data []byte, useCache bool) {
	if !useCache {
		return
	}
	if err := os.WriteFile(key, data, 0644); err != nil {
		log.Errf("Error writing cache file %s: %v", key, err)
		return
	}
	log.LogVf("Cache write: %s", key)
}

// --- End Cache Handling Functions ---
