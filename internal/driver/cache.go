package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"obsgen/internal/model"
)

// Bump when the payload layout changes; a mismatch is a silent cold run.
const cacheSchemaVersion uint16 = 1

// fingerprintCache persists the unit digest index between runs so unchanged
// units skip rendering. Losing or corrupting the cache only costs time.
type fingerprintCache struct {
	path string
}

type cachePayload struct {
	Schema  uint16
	Version string
	Digests map[string]model.Digest
}

// openCache returns the cache for one workspace directory, keyed by the
// directory's absolute path so parallel workspaces never collide.
func openCache(workDir string) *fingerprintCache {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "obsgen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		abs = workDir
	}
	key := sha256.Sum256([]byte(abs))
	return &fingerprintCache{
		path: filepath.Join(dir, hex.EncodeToString(key[:8])+".fp"),
	}
}

// Load returns the digest index from the previous run, or nil on any
// mismatch (schema change, different tool version, corruption).
func (c *fingerprintCache) Load(version string) map[string]model.Digest {
	if c == nil {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil
	}
	if payload.Schema != cacheSchemaVersion || payload.Version != version {
		return nil
	}
	return payload.Digests
}

// Save writes the next digest index atomically.
func (c *fingerprintCache) Save(version string, digests map[string]model.Digest) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(cachePayload{
		Schema:  cacheSchemaVersion,
		Version: version,
		Digests: digests,
	})
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
