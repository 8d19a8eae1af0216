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
import "errors"

import "github.com/pbenner/threadpool"

/* -------------------------------------------------------------------------- */

// A set of tracks displayed together. A view change loads the new region
// for all tracks in parallel and redraws each changed track once.
type TrackGroup struct {
  pool   threadpool.ThreadPool
  tracks []*RenderableTrack
}

func NewTrackGroup(threads int, tracks ...*RenderableTrack) *TrackGroup {
  if threads < 1 {
    threads = 1
  }
  return &TrackGroup{pool: threadpool.New(threads, 100*threads), tracks: tracks}
}

func (group *TrackGroup) Add(track *RenderableTrack) {
  group.tracks = append(group.tracks, track)
}

func (group *TrackGroup) Tracks() []*RenderableTrack {
  return group.tracks
}

// Load a region for all tracks. Tracks failing to load are left in the
// Failed state, their errors are returned joined. Superseded loads are
// not reported.
func (group *TrackGroup) SetRegion(ctx context.Context, region GenomicRegion, window Window) error {
  errs := make([]error, len(group.tracks))
  g    := group.pool.NewJobGroup()

  for i := range group.tracks {
    // make a thread safe copy of i
    j := i
    // errors are collected instead of returned, so that a failing track
    // does not abort the others
    group.pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
      if err := group.tracks[j].SetRegion(ctx, region, window); err != nil && err != ErrSuperseded {
        errs[j] = err
      }
      return nil
    })
  }
  if err := group.pool.Wait(g); err != nil {
    return err
  }
  return errors.Join(errs...)
}

// Redraw all tracks with pending updates. Returns the number of redrawn
// tracks.
func (group *TrackGroup) ApplyPendingUpdates() (int, error) {
  n    := 0
  errs := []error{}
  for _, t := range group.tracks {
    ok, err := t.ApplyPendingUpdate()
    if err != nil {
      errs = append(errs, err)
    }
    if ok {
      n++
    }
  }
  return n, errors.Join(errs...)
}
