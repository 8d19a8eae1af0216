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
import "testing"

/* -------------------------------------------------------------------------- */

func TestTrackGroup1(t *testing.T) {
  kind1 := newStubKind()
  kind2 := newStubKind()
  kind2.errs[500] = []error{&RemoteRejected{Op: "counts", Status: 500, Message: "internal error"}}

  surface1 := &recordingSurface{}
  surface2 := &recordingSurface{}
  group    := NewTrackGroup(2,
    newTestTrack(t, kind1, surface1, DefaultRetryPolicy()),
    newTestTrack(t, kind2, surface2, DefaultRetryPolicy()))

  if err := group.SetRegion(context.Background(), testRegion(t, 0, 400), 100); err != nil {
    t.Fatal(err)
  }
  if n, err := group.ApplyPendingUpdates(); n != 2 || err != nil {
    t.Error("TestTrackGroup1 failed!")
  }
  // only the first track loads the next region
  err := group.SetRegion(context.Background(), testRegion(t, 500, 900), 100)
  if ClassifyError(err) != ErrorRemoteRejected {
    t.Errorf("TestTrackGroup1 failed: %v", err)
  }
  if n, _ := group.ApplyPendingUpdates(); n != 1 {
    t.Error("TestTrackGroup1 failed!")
  }
  if s, _ := group.Tracks()[1].State(); s != TrackFailed {
    t.Error("TestTrackGroup1 failed!")
  }
  if surface1.redraws != 2 || surface2.redraws != 1 {
    t.Error("TestTrackGroup1 failed!")
  }
}
