/* Copyright (C) 2016 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */


package gotracks

/* -------------------------------------------------------------------------- */

import "context"
import "sync"

import "go.uber.org/zap"
import "golang.org/x/sync/singleflight"

/* -------------------------------------------------------------------------- */

type CapabilityProber interface {
  FetchCapabilityProbe(ctx context.Context, sample SampleRef) (CapabilityProbe, error)
}

// SampleCapabilityCache memoizes the classification of samples. At most
// one probe per sample is in flight, concurrent callers share its result.
// Unsupported samples are cached as well, failed probes are not.
type SampleCapabilityCache struct {
  prober  CapabilityProber
  logger  *zap.Logger
  metrics *Metrics
  mu      sync.RWMutex
  entries map[string]SampleCapability
  // bumped by Invalidate, a probe only stores its result if the
  // generation of its sample did not change
  gens    map[string]uint64
  group   singleflight.Group
}

func NewSampleCapabilityCache(prober CapabilityProber, opts ...Option) *SampleCapabilityCache {
  o := newOptions(opts)
  return &SampleCapabilityCache{
    prober : prober,
    logger : o.logger,
    metrics: o.metrics,
    entries: make(map[string]SampleCapability),
    gens   : make(map[string]uint64) }
}

/* -------------------------------------------------------------------------- */

func (cache *SampleCapabilityCache) lookup(sample SampleRef) (SampleCapability, bool) {
  cache.mu.RLock()
  defer cache.mu.RUnlock()
  c, ok := cache.entries[sample.Id]
  return c, ok
}

// Cached capability of a sample without probing.
func (cache *SampleCapabilityCache) Peek(sample SampleRef) (SampleCapability, bool) {
  return cache.lookup(sample)
}

func (cache *SampleCapabilityCache) GetCapability(ctx context.Context, sample SampleRef) (SampleCapability, error) {
  if c, ok := cache.lookup(sample); ok {
    cache.metrics.CacheHits.Inc()
    return c, nil
  }
  cache.metrics.CacheMisses.Inc()

  // the probe is shared, a caller giving up must not cancel it for the
  // others
  probeCtx := context.WithoutCancel(ctx)

  ch := cache.group.DoChan(sample.Id, func() (interface{}, error) {
    // a flight for this sample may have finished since the lookup above
    if c, ok := cache.lookup(sample); ok {
      return c, nil
    }
    cache.mu.RLock()
    gen := cache.gens[sample.Id]
    cache.mu.RUnlock()
    cache.metrics.CapabilityProbes.Inc()
    probe, err := cache.prober.FetchCapabilityProbe(probeCtx, sample)
    if err != nil {
      cache.logger.Warn("capability probe failed",
        zap.String("sample", sample.Id),
        zap.Error(err))
      return SampleCapability{}, err
    }
    c := probe.Capability()
    cache.mu.Lock()
    stored := cache.gens[sample.Id] == gen
    if stored {
      cache.entries[sample.Id] = c
    }
    cache.mu.Unlock()
    if !stored {
      cache.logger.Debug("discarding capability of invalidated sample",
        zap.String("sample", sample.Id))
      return c, nil
    }
    cache.logger.Info("sample classified",
      zap.String("sample", sample.Id),
      zap.Stringer("kind", c.Kind),
      zap.Int("read_length", c.ReadLength))
    return c, nil
  })
  select {
  case <-ctx.Done():
    return SampleCapability{}, ctx.Err()
  case r := <-ch:
    if r.Err != nil {
      return SampleCapability{}, r.Err
    }
    return r.Val.(SampleCapability), nil
  }
}

// Store a read length obtained from a direct probe for a sample that is
// already classified.
func (cache *SampleCapabilityCache) setReadLength(sample SampleRef, n int) {
  cache.mu.Lock()
  defer cache.mu.Unlock()
  if c, ok := cache.entries[sample.Id]; ok {
    c.ReadLength = n
    cache.entries[sample.Id] = c
  }
}

// Drop the cached capability of a sample. A probe in flight is not
// restarted, callers arriving meanwhile share its result but it is not
// stored.
func (cache *SampleCapabilityCache) Invalidate(sample SampleRef) {
  cache.mu.Lock()
  defer cache.mu.Unlock()
  delete(cache.entries, sample.Id)
  cache.gens[sample.Id]++
}

func (cache *SampleCapabilityCache) Len() int {
  cache.mu.RLock()
  defer cache.mu.RUnlock()
  return len(cache.entries)
}
