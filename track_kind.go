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
import "strings"

/* -------------------------------------------------------------------------- */

// Data bound to a track for one region. Values holds one entry per bin
// of width Window. NormFactor converts values to reads per million
// mapped reads, it is zero if the track cannot be normalized.
type TrackData struct {
  Region     GenomicRegion
  Window     Window
  Values     []float64
  NormFactor float64
}

func (data TrackData) Normalized(normalize bool) []float64 {
  if !normalize || data.NormFactor <= 0 {
    return data.Values
  }
  r := make([]float64, len(data.Values))
  for i, v := range data.Values {
    r[i] = v*data.NormFactor
  }
  return r
}

/* -------------------------------------------------------------------------- */

// Drawing target of a track, implemented outside of this package by the
// figure code. PlotSurface is a gonum/plot based implementation.
type RenderSurface interface {
  BindData(values []float64)
  SetScale(min, max float64)
  Redraw() error
}

// Optional extension of RenderSurface for surfaces that draw titles,
// coordinates and styles.
type StyledSurface interface {
  RenderSurface
  SetTitle(title string)
  SetRegion(region GenomicRegion, window Window)
  SetStyle(style TrackStyle)
}

// Remote data required by the track kinds, implemented by
// TrackDataAssembly.
type TrackDataSource interface {
  FetchCounts(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (CountsResult, error)
  FetchReads(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (ReadsResult, error)
  FetchMappedReads(ctx context.Context, sample SampleRef, genome string, window Window) (MappedReadCount, error)
  GetReadLength(ctx context.Context, sample SampleRef) (int, error)
}

// TrackKind is implemented by CountsTrack, ReadsTrack and BedGraphTrack.
type TrackKind interface {
  GetType() string
  GetName() string
  // Prepare a surface for drawing this track.
  CreateGraph(surface RenderSurface) error
  // Load the data of a region. Blocks until the data is available.
  UpdateGraph(ctx context.Context, region GenomicRegion, window Window) (TrackData, error)
  ToSerializable() TrackDescriptor
}

// Default style of a track kind, reads are drawn as bars and all other
// kinds as filled area.
func KindStyle(kind TrackKind) TrackStyle {
  t := DefaultTrackStyle()
  if kind.GetType() == TrackTypeReads {
    t.Style = PlotBars
  }
  return t
}

func createGraph(kind TrackKind, surface RenderSurface) error {
  if surface == nil {
    return fmt.Errorf("%s track `%s': no surface", kind.GetType(), kind.GetName())
  }
  if s, ok := surface.(StyledSurface); ok {
    s.SetTitle(kind.GetName())
    s.SetStyle(KindStyle(kind))
  }
  return nil
}

/* -------------------------------------------------------------------------- */

const (
  TrackTypeCounts   = "counts"
  TrackTypeReads    = "reads"
  TrackTypeBedGraph = "bedgraph"
)

// Serializable description of a track, used in configuration files.
type TrackDescriptor struct {
  Type      string `yaml:"type"`
  Name      string `yaml:"name"`
  Sample    string `yaml:"sample,omitempty"`
  Genome    string `yaml:"genome,omitempty"`
  File      string `yaml:"file,omitempty"`
  Color     string `yaml:"color,omitempty"`
  FillColor string `yaml:"fill_color,omitempty"`
  Style     string `yaml:"style,omitempty"`
}

func (d TrackDescriptor) Validate() error {
  switch strings.ToLower(d.Type) {
  case TrackTypeCounts, TrackTypeReads:
    if d.Sample == "" {
      return fmt.Errorf("%s track requires a sample", d.Type)
    }
  case TrackTypeBedGraph:
    if d.File == "" {
      return fmt.Errorf("bedgraph track requires a file")
    }
  default:
    return fmt.Errorf("invalid track type `%s'", d.Type)
  }
  if _, err := DefaultTrackStyle().Merge(d); err != nil {
    return err
  }
  return nil
}

// Reconstruct a track kind from its description. Remote kinds fetch
// their data from source, bedGraph files are read immediately.
func NewTrackKind(d TrackDescriptor, source TrackDataSource) (TrackKind, error) {
  if err := d.Validate(); err != nil {
    return nil, err
  }
  name := d.Name
  switch strings.ToLower(d.Type) {
  case TrackTypeCounts:
    if name == "" {
      name = d.Sample
    }
    return NewCountsTrack(name, NewSampleRef(d.Sample, d.Genome), source), nil
  case TrackTypeReads:
    if name == "" {
      name = d.Sample
    }
    return NewReadsTrack(name, NewSampleRef(d.Sample, d.Genome), source), nil
  default:
    bedGraph := BedGraph{}
    if err := bedGraph.Import(d.File); err != nil {
      return nil, err
    }
    if name != "" {
      bedGraph.Name = name
    }
    return NewBedGraphTrack(bedGraph, d.File), nil
  }
}
