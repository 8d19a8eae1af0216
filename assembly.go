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
import "fmt"

import "go.uber.org/zap"

/* -------------------------------------------------------------------------- */

// TrackDataAssembly combines a TrackDataClient with a capability cache.
// It is the entry point for everything that needs signal data from the
// assembly service and is safe for concurrent use.
//
// Data requests use the configured codec. With the binary fast path
// enabled, samples with read support are queried with the binary codec
// instead, which yields the same results.
type TrackDataAssembly struct {
  client   *TrackDataClient
  binary   *TrackDataClient
  cache    *SampleCapabilityCache
  logger   *zap.Logger
  fastPath bool
}

func NewTrackDataAssembly(endpoint Endpoint, opts ...Option) (*TrackDataAssembly, error) {
  client, err := NewTrackDataClient(endpoint, opts...)
  if err != nil {
    return nil, err
  }
  return NewTrackDataAssemblyFromClient(client, opts...), nil
}

func NewTrackDataAssemblyFromClient(client *TrackDataClient, opts ...Option) *TrackDataAssembly {
  o := newOptions(opts)
  return &TrackDataAssembly{
    client  : client,
    binary  : client.Using(BinaryCodec{}),
    cache   : NewSampleCapabilityCache(client, opts...),
    logger  : o.logger,
    fastPath: o.binaryFastPath }
}

// Create an assembly from a validated configuration.
func NewTrackDataAssemblyFromConfig(config Config, opts ...Option) (*TrackDataAssembly, error) {
  codec, err := NewWireCodec(config.Codec)
  if err != nil {
    return nil, err
  }
  o := []Option{WithCodec(codec), WithBinaryFastPath(config.BinaryFastPath)}
  if config.Timeout > 0 {
    o = append(o, WithHTTPClient(newHTTPClient(config.Timeout)))
  }
  return NewTrackDataAssembly(config.Endpoint, append(o, opts...)...)
}

/* -------------------------------------------------------------------------- */

func (a *TrackDataAssembly) Client() *TrackDataClient {
  return a.client
}

func (a *TrackDataAssembly) Cache() *SampleCapabilityCache {
  return a.cache
}

// Client used for data requests of the given sample.
func (a *TrackDataAssembly) dataClient(ctx context.Context, sample SampleRef) *TrackDataClient {
  if !a.fastPath || a.client.Codec().Name() == a.binary.Codec().Name() {
    return a.client
  }
  ok, err := a.HasReadSupport(ctx, sample)
  if err != nil {
    a.logger.Warn("binary fast path unavailable, using configured codec",
      zap.String("sample", sample.Id),
      zap.String("codec", a.client.Codec().Name()),
      zap.Error(err))
    return a.client
  }
  if ok {
    return a.binary
  }
  return a.client
}

func (a *TrackDataAssembly) tolerate(op Operation, sample SampleRef, region GenomicRegion, err error) {
  a.logger.Warn("treating malformed response as empty data",
    zap.String("op", op.String()),
    zap.String("sample", sample.Id),
    zap.Stringer("region", region),
    zap.Error(err))
}

/* -------------------------------------------------------------------------- */

func (a *TrackDataAssembly) GetCapability(ctx context.Context, sample SampleRef) (SampleCapability, error) {
  return a.cache.GetCapability(ctx, sample)
}

// True if the sample is stored as legacy binary read track.
func (a *TrackDataAssembly) HasReadSupport(ctx context.Context, sample SampleRef) (bool, error) {
  c, err := a.cache.GetCapability(ctx, sample)
  if err != nil {
    return false, err
  }
  return c.Kind == StorageBRT, nil
}

// True if the sample is stored as binary vector track.
func (a *TrackDataAssembly) IsVectorTrack(ctx context.Context, sample SampleRef) (bool, error) {
  c, err := a.cache.GetCapability(ctx, sample)
  if err != nil {
    return false, err
  }
  return c.Kind == StorageBVT, nil
}

// Read length of a sample, taken from the capability if the probe
// reported it and requested directly otherwise.
func (a *TrackDataAssembly) GetReadLength(ctx context.Context, sample SampleRef) (int, error) {
  c, err := a.cache.GetCapability(ctx, sample)
  if err != nil {
    return 0, err
  }
  if c.HasReadLength() {
    return c.ReadLength, nil
  }
  n, err := a.client.FetchReadLength(ctx, sample)
  if err != nil {
    return 0, err
  }
  a.cache.setReadLength(sample, n)
  return n, nil
}

func (a *TrackDataAssembly) Invalidate(sample SampleRef) {
  a.cache.Invalidate(sample)
}

/* -------------------------------------------------------------------------- */

func (a *TrackDataAssembly) FetchStarts(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (StartsResult, error) {
  r, err := a.dataClient(ctx, sample).FetchStarts(ctx, sample, region, window)
  if isMalformed(err) {
    a.tolerate(OpStarts, sample, region, err)
    return StartsResult{}, nil
  }
  return r, err
}

func (a *TrackDataAssembly) FetchStrands(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (StrandResult, error) {
  r, err := a.dataClient(ctx, sample).FetchStrands(ctx, sample, region, window)
  if isMalformed(err) {
    a.tolerate(OpStrands, sample, region, err)
    return StrandResult{}, nil
  }
  return r, err
}

// Fetch starts and strands of the same reads. Both results are aligned
// by index.
func (a *TrackDataAssembly) FetchReads(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (ReadsResult, error) {
  client  := a.dataClient(ctx, sample)
  starts, err := client.FetchStarts(ctx, sample, region, window)
  if err == nil {
    var strands StrandResult
    if strands, err = client.FetchStrands(ctx, sample, region, window); err == nil {
      if len(starts) != len(strands) {
        err = &MalformedResponse{Op: OpStrands.String(), Reason: fmt.Sprintf("%d strands for %d starts", len(strands), len(starts))}
      } else {
        return ReadsResult{Starts: starts, Strands: strands}, nil
      }
    }
  }
  if isMalformed(err) {
    a.tolerate(OpStarts, sample, region, err)
    return ReadsResult{Starts: StartsResult{}, Strands: StrandResult{}}, nil
  }
  return ReadsResult{}, err
}

// Binned counts. A malformed response is treated as a region without
// reads.
func (a *TrackDataAssembly) FetchCounts(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (CountsResult, error) {
  r, err := a.dataClient(ctx, sample).FetchCounts(ctx, sample, region, window)
  if isMalformed(err) {
    a.tolerate(OpCounts, sample, region, err)
    return make(CountsResult, region.NBins(window)), nil
  }
  return r, err
}

func (a *TrackDataAssembly) FetchMappedReads(ctx context.Context, sample SampleRef, genome string, window Window) (MappedReadCount, error) {
  return a.client.FetchMappedReads(ctx, sample, genome, window)
}

func (a *TrackDataAssembly) FetchGenome(ctx context.Context, sample SampleRef) (string, error) {
  return a.client.FetchGenome(ctx, sample)
}
