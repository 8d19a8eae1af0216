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
import "net/http"
import "net/http/httptest"
import "reflect"
import "strings"
import "sync/atomic"
import "testing"

import "go.uber.org/zap"
import "go.uber.org/zap/zaptest/observer"

/* -------------------------------------------------------------------------- */

func newTestAssembly(t *testing.T, url string, opts ...Option) *TrackDataAssembly {
  a, err := NewTrackDataAssembly(Endpoint{URL: url}, opts...)
  if err != nil {
    t.Fatal(err)
  }
  return a
}

/* -------------------------------------------------------------------------- */

func TestAssembly1(t *testing.T) {
  service  := newFakeService(t)
  assembly := newTestAssembly(t, service.URL())
  ctx      := context.Background()

  if ok, err := assembly.HasReadSupport(ctx, testSample()); err != nil || !ok {
    t.Error("TestAssembly1 failed!")
  }
  if ok, err := assembly.IsVectorTrack(ctx, testSample()); err != nil || ok {
    t.Error("TestAssembly1 failed!")
  }
  if n, err := assembly.GetReadLength(ctx, testSample()); err != nil || n != 50 {
    t.Error("TestAssembly1 failed!")
  }
  if atomic.LoadInt32(&service.Probes) != 1 {
    t.Errorf("TestAssembly1 failed: %d probes", service.Probes)
  }
}

func TestAssembly2(t *testing.T) {
  service  := newFakeService(t)
  service.Kind       = "bvt"
  service.ReadLength = 0
  assembly := newTestAssembly(t, service.URL())
  ctx      := context.Background()

  if ok, err := assembly.IsVectorTrack(ctx, testSample()); err != nil || !ok {
    t.Error("TestAssembly2 failed!")
  }
  // no read length in the probe, fall back to a direct request
  if n, err := assembly.GetReadLength(ctx, testSample()); err != nil || n != 36 {
    t.Error("TestAssembly2 failed!")
  }
  if c, ok := assembly.Cache().Peek(testSample()); !ok || c.ReadLength != 36 {
    t.Error("TestAssembly2 failed!")
  }
}

func TestAssembly3(t *testing.T) {
  ctx    := context.Background()
  region := testRegion(t, 0, 500)

  service1  := newFakeService(t)
  service2  := newFakeService(t)
  assembly1 := newTestAssembly(t, service1.URL())
  assembly2 := newTestAssembly(t, service2.URL(), WithBinaryFastPath(true))

  r1, err := assembly1.FetchReads(ctx, testSample(), region, 10)
  if err != nil {
    t.Fatal(err)
  }
  r2, err := assembly2.FetchReads(ctx, testSample(), region, 10)
  if err != nil {
    t.Fatal(err)
  }
  if !reflect.DeepEqual(r1, r2) || r1.Length() != 6 {
    t.Error("TestAssembly3 failed!")
  }
  c1, err := assembly1.FetchCounts(ctx, testSample(), region, 100)
  if err != nil {
    t.Fatal(err)
  }
  c2, err := assembly2.FetchCounts(ctx, testSample(), region, 100)
  if err != nil {
    t.Fatal(err)
  }
  if !reflect.DeepEqual(c1, c2) || !reflect.DeepEqual(c1, CountsResult{0, 3, 1, 1, 1}) {
    t.Errorf("TestAssembly3 failed: %v %v", c1, c2)
  }
  for _, p := range service1.Paths() {
    if strings.Contains(p, "/b") {
      t.Errorf("TestAssembly3 failed: unexpected binary request `%s'", p)
    }
  }
  binary := 0
  for _, p := range service2.Paths() {
    if strings.HasSuffix(strings.SplitN(p, "?", 2)[0], "/b") {
      binary++
    }
  }
  if binary != 3 {
    t.Errorf("TestAssembly3 failed: %d binary requests", binary)
  }
}

func TestAssembly4(t *testing.T) {
  // service answering every data request with garbage
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.Write([]byte(`[{"x":1}]`))
  }))
  defer server.Close()

  assembly := newTestAssembly(t, server.URL)
  ctx      := context.Background()
  region   := testRegion(t, 0, 250)

  if r, err := assembly.FetchStarts(ctx, testSample(), region, 1); err != nil || len(r) != 0 {
    t.Error("TestAssembly4 failed!")
  }
  if r, err := assembly.FetchReads(ctx, testSample(), region, 1); err != nil || r.Length() != 0 {
    t.Error("TestAssembly4 failed!")
  }
  if r, err := assembly.FetchCounts(ctx, testSample(), region, 100); err != nil || !reflect.DeepEqual(r, CountsResult{0, 0, 0}) {
    t.Error("TestAssembly4 failed!")
  }
  // metadata errors are reported
  if _, err := assembly.FetchGenome(ctx, testSample()); ClassifyError(err) != ErrorMalformedResponse {
    t.Error("TestAssembly4 failed!")
  }
  if _, err := assembly.GetCapability(ctx, testSample()); ClassifyError(err) != ErrorMalformedResponse {
    t.Error("TestAssembly4 failed!")
  }
}

func TestAssembly5(t *testing.T) {
  service  := newFakeService(t)
  service.Reject = http.StatusForbidden
  assembly := newTestAssembly(t, service.URL(), WithBinaryFastPath(true))

  // rejected requests are never turned into empty data
  _, err := assembly.FetchCounts(context.Background(), testSample(), testRegion(t, 0, 100), 10)
  if ClassifyError(err) != ErrorRemoteRejected {
    t.Errorf("TestAssembly5 failed: %v", err)
  }
}

func TestAssembly6(t *testing.T) {
  service := newFakeService(t)
  // classification fails, data requests succeed
  server  := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if strings.HasPrefix(r.URL.Path, "/type") {
      http.Error(w, "unavailable", http.StatusServiceUnavailable)
      return
    }
    service.ServeHTTP(w, r)
  }))
  defer server.Close()

  core, logs := observer.New(zap.WarnLevel)
  assembly    := newTestAssembly(t, server.URL, WithBinaryFastPath(true), WithLogger(zap.New(core)))

  counts, err := assembly.FetchCounts(context.Background(), testSample(), testRegion(t, 0, 500), 100)
  if err != nil {
    t.Fatal(err)
  }
  if !reflect.DeepEqual(counts, CountsResult{0, 3, 1, 1, 1}) {
    t.Errorf("TestAssembly6 failed: %v", counts)
  }
  if n := logs.FilterMessage("binary fast path unavailable, using configured codec").Len(); n != 1 {
    t.Errorf("TestAssembly6 failed: %d warnings", n)
  }
}
