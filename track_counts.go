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
import "sync"

/* -------------------------------------------------------------------------- */

type mappedKey struct {
  genome string
  window Window
}

// Memoized number of mapped reads of a sample, used to convert
// signal values to reads per million.
type mappedReads struct {
  mu     sync.Mutex
  counts map[mappedKey]MappedReadCount
}

func (m *mappedReads) normFactor(ctx context.Context, source TrackDataSource, sample SampleRef, genome string, window Window) (float64, error) {
  key := mappedKey{genome, window}
  m.mu.Lock()
  n, ok := m.counts[key]
  m.mu.Unlock()
  if !ok {
    var err error
    if n, err = source.FetchMappedReads(ctx, sample, genome, window); err != nil {
      return 0, err
    }
    m.mu.Lock()
    if m.counts == nil {
      m.counts = make(map[mappedKey]MappedReadCount)
    }
    m.counts[key] = n
    m.mu.Unlock()
  }
  if n <= 0 {
    return 0, nil
  }
  return 1e6/float64(n), nil
}

/* -------------------------------------------------------------------------- */

// Binned read counts of a remote sample.
type CountsTrack struct {
  Name   string
  Sample SampleRef
  source TrackDataSource
  mapped *mappedReads
}

func NewCountsTrack(name string, sample SampleRef, source TrackDataSource) *CountsTrack {
  return &CountsTrack{Name: name, Sample: sample, source: source, mapped: &mappedReads{}}
}

func (track *CountsTrack) GetType() string {
  return TrackTypeCounts
}

func (track *CountsTrack) GetName() string {
  return track.Name
}

func (track *CountsTrack) CreateGraph(surface RenderSurface) error {
  return createGraph(track, surface)
}

func (track *CountsTrack) UpdateGraph(ctx context.Context, region GenomicRegion, window Window) (TrackData, error) {
  counts, err := track.source.FetchCounts(ctx, track.Sample, region, window)
  if err != nil {
    return TrackData{}, fmt.Errorf("counts track `%s': %w", track.Name, err)
  }
  f, err := track.mapped.normFactor(ctx, track.source, track.Sample, region.Genome, window)
  if err != nil {
    return TrackData{}, fmt.Errorf("counts track `%s': %w", track.Name, err)
  }
  values := make([]float64, len(counts))
  for i, c := range counts {
    values[i] = float64(c)
  }
  return TrackData{Region: region, Window: window, Values: values, NormFactor: f}, nil
}

func (track *CountsTrack) ToSerializable() TrackDescriptor {
  return TrackDescriptor{
    Type  : TrackTypeCounts,
    Name  : track.Name,
    Sample: track.Sample.Id,
    Genome: track.Sample.Genome }
}
