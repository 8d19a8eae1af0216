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

import "encoding/json"
import "net/http"
import "net/http/httptest"
import "strconv"
import "strings"
import "sync"
import "sync/atomic"
import "testing"

/* -------------------------------------------------------------------------- */

// In-memory assembly service answering both the text and the binary
// protocol for a single set of reads on chr1.
type fakeService struct {
  Starts     []int
  Strands    StrandResult
  Kind       string
  ReadLength int
  Mapped     int
  // status returned for every request if non-zero
  Reject     int
  // probes block until the channel is closed
  ProbeGate  chan struct{}
  Probes     int32
  Requests   int32

  mu         sync.Mutex
  paths      []string
  server     *httptest.Server
}

func newFakeService(t *testing.T) *fakeService {
  s := &fakeService{
    Starts    : []int{120, 105, 300, 101, 250, 480},
    Strands   : StrandResult{'+', '-', '+', '+', '-', '-'},
    Kind      : "brt",
    ReadLength: 50,
    Mapped    : 2000000 }
  s.server = httptest.NewServer(s)
  t.Cleanup(s.server.Close)
  return s
}

func (s *fakeService) URL() string {
  return s.server.URL
}

func (s *fakeService) Paths() []string {
  s.mu.Lock()
  defer s.mu.Unlock()
  return append([]string{}, s.paths...)
}

func (s *fakeService) reads(from, to int) ([]int, StrandResult) {
  starts  := []int{}
  strands := StrandResult{}
  for i, x := range s.Starts {
    if x >= from && x < to {
      starts  = append(starts,  x)
      strands = append(strands, s.Strands[i])
    }
  }
  return starts, strands
}

func (s *fakeService) counts(from, to, bw int) []int {
  r := NewRange(from, to)
  c := make([]int, r.NBins(bw))
  starts, _ := s.reads(from, to)
  for _, x := range starts {
    c[(x-from)/bw]++
  }
  return c
}

func writeJSON(w http.ResponseWriter, v interface{}) {
  w.Header().Set("Content-Type", "application/json")
  json.NewEncoder(w).Encode(v)
}

func (s *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
  atomic.AddInt32(&s.Requests, 1)
  s.mu.Lock()
  s.paths = append(s.paths, r.URL.RequestURI())
  s.mu.Unlock()

  if s.Reject != 0 {
    http.Error(w, "sample not found", s.Reject)
    return
  }
  seg := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
  q   := r.URL.Query()
  atoi := func(s string) int {
    i, _ := strconv.Atoi(s)
    return i
  }
  binary := seg[len(seg)-1] == "b"

  switch seg[0] {
  case "starts", "strands":
    starts, strands := s.reads(atoi(seg[4]), atoi(seg[5]))
    switch {
    case seg[0] == "starts" && binary:
      w.Write(EncodeBinaryInts(starts))
    case seg[0] == "starts":
      writeJSON(w, []map[string]interface{}{{"s": starts}})
    case binary:
      w.Write(EncodeBinaryStrands(strands))
    default:
      t := make([]string, len(strands))
      for i := range strands {
        t[i] = strands[i].String()
      }
      writeJSON(w, []map[string]interface{}{{"s": t}})
    }
  case "counts":
    if binary {
      w.Write(EncodeBinaryInts(s.counts(atoi(seg[4]), atoi(seg[5]), atoi(seg[6]))))
    } else {
      writeJSON(w, []map[string]interface{}{{"c": s.counts(atoi(q.Get("s")), atoi(q.Get("e")), atoi(q.Get("bw")))}})
    }
  case "mapped":
    writeJSON(w, []int{s.Mapped})
  case "genome":
    writeJSON(w, []map[string]interface{}{{"genome": "hg19"}})
  case "type":
    atomic.AddInt32(&s.Probes, 1)
    if s.ProbeGate != nil {
      <-s.ProbeGate
    }
    v := map[string]interface{}{"type": s.Kind}
    if s.ReadLength > 0 {
      v["length"] = s.ReadLength
    }
    writeJSON(w, []interface{}{v})
  case "length":
    writeJSON(w, []map[string]interface{}{{"length": 36}})
  default:
    http.NotFound(w, r)
  }
}

/* -------------------------------------------------------------------------- */

func testSample() SampleRef {
  return NewSampleRef("42", "hg19")
}

func testRegion(t *testing.T, from, to int) GenomicRegion {
  r, err := NewGenomicRegion("hg19", "chr1", from, to)
  if err != nil {
    t.Fatal(err)
  }
  return r
}
