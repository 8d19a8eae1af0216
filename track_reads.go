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

/* -------------------------------------------------------------------------- */

// Reads of a remote sample, extended to the read length of the sample and
// piled up in bins of the requested window.
type ReadsTrack struct {
  Name   string
  Sample SampleRef
  source TrackDataSource
  mapped *mappedReads
}

func NewReadsTrack(name string, sample SampleRef, source TrackDataSource) *ReadsTrack {
  return &ReadsTrack{Name: name, Sample: sample, source: source, mapped: &mappedReads{}}
}

func (track *ReadsTrack) GetType() string {
  return TrackTypeReads
}

func (track *ReadsTrack) GetName() string {
  return track.Name
}

func (track *ReadsTrack) CreateGraph(surface RenderSurface) error {
  return createGraph(track, surface)
}

func (track *ReadsTrack) UpdateGraph(ctx context.Context, region GenomicRegion, window Window) (TrackData, error) {
  readLength, err := track.source.GetReadLength(ctx, track.Sample)
  if err != nil {
    return TrackData{}, fmt.Errorf("reads track `%s': %w", track.Name, err)
  }
  reads, err := track.source.FetchReads(ctx, track.Sample, region, window)
  if err != nil {
    return TrackData{}, fmt.Errorf("reads track `%s': %w", track.Name, err)
  }
  f, err := track.mapped.normFactor(ctx, track.source, track.Sample, region.Genome, window)
  if err != nil {
    return TrackData{}, fmt.Errorf("reads track `%s': %w", track.Name, err)
  }
  values := PileUpReads(reads, readLength, region, window)
  return TrackData{Region: region, Window: window, Values: values, NormFactor: f}, nil
}

func (track *ReadsTrack) ToSerializable() TrackDescriptor {
  return TrackDescriptor{
    Type  : TrackTypeReads,
    Name  : track.Name,
    Sample: track.Sample.Id,
    Genome: track.Sample.Genome }
}

/* -------------------------------------------------------------------------- */

// Mean coverage of each bin by reads of the given length. Reads are
// anchored at their start position and extended in 3' direction, i.e.
// reads on the minus strand end at their start position.
func PileUpReads(reads ReadsResult, readLength int, region GenomicRegion, window Window) []float64 {
  binSize := int(window)
  values  := make([]float64, region.NBins(window))
  if readLength < 1 {
    readLength = 1
  }
  for i, start := range reads.Starts {
    from := start
    to   := start + readLength
    if i < len(reads.Strands) && reads.Strands[i] == StrandMinus {
      from = start - readLength + 1
      to   = start + 1
    }
    from = iMax(from, region.From)
    to   = iMin(to,   region.To)
    if from >= to {
      continue
    }
    for j := (from-region.From)/binSize; j < len(values); j++ {
      bin := region.Range.Bin(j, binSize)
      if bin.From >= to {
        break
      }
      r := bin.Intersection(NewRange(from, to))
      values[j] += float64(r.Length())/float64(bin.Length())
    }
  }
  return values
}
