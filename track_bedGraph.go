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

/* -------------------------------------------------------------------------- */

// Signal from a local bedGraph file.
type BedGraphTrack struct {
  BedGraph BedGraph
  File     string
}

func NewBedGraphTrack(bedGraph BedGraph, file string) *BedGraphTrack {
  return &BedGraphTrack{BedGraph: bedGraph, File: file}
}

func (track *BedGraphTrack) GetType() string {
  return TrackTypeBedGraph
}

func (track *BedGraphTrack) GetName() string {
  return track.BedGraph.Name
}

func (track *BedGraphTrack) CreateGraph(surface RenderSurface) error {
  return createGraph(track, surface)
}

func (track *BedGraphTrack) UpdateGraph(ctx context.Context, region GenomicRegion, window Window) (TrackData, error) {
  if err := ctx.Err(); err != nil {
    return TrackData{}, err
  }
  return TrackData{Region: region, Window: window, Values: track.BedGraph.BinMax(region, window)}, nil
}

func (track *BedGraphTrack) ToSerializable() TrackDescriptor {
  return TrackDescriptor{
    Type: TrackTypeBedGraph,
    Name: track.GetName(),
    File: track.File }
}
