// Package active holds the process-wide current detection configuration.
// The detector itself is stateless; long-running surfaces (the HTTP
// server, the WebSocket stream) read their per-call configuration
// snapshot from here and admins replace it atomically.
package active

import (
	"sync"

	"github.com/glint-vision/chromafind/internal/detector"
)

// Store guards one current detector.Config. Callers only ever see copies:
// the lock is held just long enough to copy in or out, never across a
// detection run.
type Store struct {
	mu  sync.RWMutex
	cfg detector.Config
}

// NewStore returns a store primed with the given configuration. The
// configuration must already be validated.
func NewStore(cfg detector.Config) *Store {
	return &Store{cfg: deepCopy(cfg)}
}

// NewDefaultStore returns a store primed with detector.DefaultConfig.
func NewDefaultStore() *Store {
	return NewStore(detector.DefaultConfig())
}

// Snapshot returns an independent copy of the current configuration.
func (s *Store) Snapshot() detector.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.cfg)
}

// Replace validates cfg and swaps it in atomically. On validation failure
// the stored configuration is left untouched.
func (s *Store) Replace(cfg detector.Config) error {
	if err := detector.ValidateConfig(cfg); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = deepCopy(cfg)
	return nil
}

// Reset restores the built-in default configuration.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = detector.DefaultConfig()
}

// deepCopy clones the slice-typed hue sets so a snapshot can never alias
// the stored config.
func deepCopy(cfg detector.Config) detector.Config {
	out := cfg
	out.CenterColor.Hues = append(detector.HueRangeSet(nil), cfg.CenterColor.Hues...)
	out.Context.SupportColor.Hues = append(detector.HueRangeSet(nil), cfg.Context.SupportColor.Hues...)
	out.Context.ExcludeHues = append(detector.HueRangeSet(nil), cfg.Context.ExcludeHues...)
	return out
}
