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

import "strings"
import "testing"

/* -------------------------------------------------------------------------- */

func TestRegion1(t *testing.T) {
  if _, err := NewGenomicRegion("hg19", "chr1", 200, 100); err == nil {
    t.Error("TestRegion1 failed!")
  }
  if _, err := NewGenomicRegion("hg19", "chr1", -1, 100); err == nil {
    t.Error("TestRegion1 failed!")
  }
  if r, err := NewGenomicRegion("hg19", "chr1", 100, 100); err != nil || r.Length() != 0 {
    t.Error("TestRegion1 failed!")
  }
}

func TestRegion2(t *testing.T) {
  r, err := ParseGenomicRegion("hg19", "chr3:1,000-2,500")
  if err != nil {
    t.Fatal(err)
  }
  if r.Seqname != "chr3" || r.Start() != 1000 || r.End() != 2500 || r.Genome != "hg19" {
    t.Errorf("TestRegion2 failed: %v", r)
  }
  if r.String() != "chr3:1000-2500" {
    t.Error("TestRegion2 failed!")
  }
  for _, s := range []string{"chr3", "chr3:10", "chr3:a-10", "chr3:20-10", ":1-2"} {
    if _, err := ParseGenomicRegion("hg19", s); err == nil {
      t.Errorf("TestRegion2 failed: `%s' accepted", s)
    }
  }
}

func TestRegion3(t *testing.T) {
  // number of bins is ceil((end-start)/window) for all regions
  for from := 0; from < 20; from++ {
    for to := from; to < 60; to++ {
      for w := 1; w < 25; w++ {
        r, _ := NewGenomicRegion("hg19", "chr1", from, to)
        n := (to - from)/w
        if (to - from) % w != 0 {
          n++
        }
        if r.NBins(Window(w)) != n {
          t.Errorf("TestRegion3 failed for [%d %d) and window %d", from, to, w)
        }
      }
    }
  }
  if _, err := NewWindow(0); err == nil {
    t.Error("TestRegion3 failed!")
  }
}

func TestRegion4(t *testing.T) {
  bed := "track name=test\nchr1\t100\t200\tpeak1\nchr2 5 10\n\n"
  regions, err := ReadRegions(strings.NewReader(bed), "mm10")
  if err != nil {
    t.Fatal(err)
  }
  if len(regions) != 2 || regions[1].Seqname != "chr2" || regions[1].From != 5 || regions[0].Genome != "mm10" {
    t.Errorf("TestRegion4 failed: %v", regions)
  }
  if _, err := ReadRegions(strings.NewReader("chr1\t300\t200\n"), "mm10"); err == nil {
    t.Error("TestRegion4 failed!")
  }
}

func TestRange1(t *testing.T) {
  r := NewRange(100, 250)
  if r.NBins(100) != 2 {
    t.Error("TestRange1 failed!")
  }
  if b := r.Bin(1, 100); b.From != 200 || b.To != 250 {
    t.Error("TestRange1 failed!")
  }
  if !r.Overlaps(NewRange(249, 300)) || r.Overlaps(NewRange(250, 300)) {
    t.Error("TestRange1 failed!")
  }
}
