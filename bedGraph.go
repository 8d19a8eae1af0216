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

import "bufio"
import "fmt"
import "io"
import "path/filepath"
import "sort"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// Elements of a bedGraph file. Elements are kept sorted by sequence name
// and start position.
type BedGraph struct {
  Name     string
  Seqnames []string
  Ranges   []Range
  Values   []float64
}

func NewBedGraph(name string, seqnames []string, from, to []int, values []float64) (BedGraph, error) {
  n := len(seqnames)
  if len(from) != n || len(to) != n || len(values) != n {
    return BedGraph{}, fmt.Errorf("NewBedGraph(): invalid arguments")
  }
  b := BedGraph{Name: name, Seqnames: seqnames, Ranges: make([]Range, n), Values: values}
  for i := 0; i < n; i++ {
    if from[i] > to[i] {
      return BedGraph{}, fmt.Errorf("NewBedGraph(): invalid range [%d %d)", from[i], to[i])
    }
    b.Ranges[i] = NewRange(from[i], to[i])
  }
  sort.Sort(b)
  return b, nil
}

func (b BedGraph) Length() int {
  return len(b.Seqnames)
}

func (b BedGraph) Len() int {
  return b.Length()
}

func (b BedGraph) Less(i, j int) bool {
  if b.Seqnames[i] != b.Seqnames[j] {
    return b.Seqnames[i] < b.Seqnames[j]
  }
  return b.Ranges[i].From < b.Ranges[j].From
}

func (b BedGraph) Swap(i, j int) {
  b.Seqnames[i], b.Seqnames[j] = b.Seqnames[j], b.Seqnames[i]
  b.Ranges  [i], b.Ranges  [j] = b.Ranges  [j], b.Ranges  [i]
  b.Values  [i], b.Values  [j] = b.Values  [j], b.Values  [i]
}

/* -------------------------------------------------------------------------- */

// Indices of all elements overlapping the region.
func (b BedGraph) Find(region GenomicRegion) []int {
  r := []int{}
  // first element on the sequence
  i := sort.Search(b.Length(), func(i int) bool {
    return b.Seqnames[i] >= region.Seqname
  })
  for ; i < b.Length() && b.Seqnames[i] == region.Seqname; i++ {
    if b.Ranges[i].From >= region.To {
      break
    }
    if b.Ranges[i].Overlaps(region.Range) {
      r = append(r, i)
    }
  }
  return r
}

// Maximum value of overlapping elements for each bin of the region. Bins
// without elements are zero.
func (b BedGraph) BinMax(region GenomicRegion, window Window) []float64 {
  binSize := int(window)
  values  := make([]float64, region.NBins(window))
  set     := make([]bool, len(values))
  for _, i := range b.Find(region) {
    r := b.Ranges[i].Intersection(region.Range)
    for j := (r.From-region.From)/binSize; j < len(values) && j*binSize+region.From < r.To; j++ {
      if !set[j] || b.Values[i] > values[j] {
        values[j] = b.Values[i]
        set   [j] = true
      }
    }
  }
  return values
}

/* i/o
 * -------------------------------------------------------------------------- */

func (b *BedGraph) Read(r io.Reader) error {
  scanner := bufio.NewScanner(r)
  seqnames := []string{}
  from     := []int{}
  to       := []int{}
  values   := []float64{}

  for scanner.Scan() {
    line := scanner.Text()
    if strings.HasPrefix(line, "track") {
      if i := strings.Index(line, "name="); i != -1 && b.Name == "" {
        if t := fieldsQuoted(line[i+5:]); len(t) > 0 {
          b.Name = strings.Trim(t[0], `"`)
        }
      }
      continue
    }
    if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "browser") {
      continue
    }
    fields := strings.Fields(line)
    if len(fields) == 0 {
      continue
    }
    if len(fields) != 4 {
      return fmt.Errorf("ReadBedGraph(): bedGraph file must have four columns")
    }
    t1, err := strconv.ParseInt(fields[1], 10, 64); if err != nil {
      return err
    }
    t2, err := strconv.ParseInt(fields[2], 10, 64); if err != nil {
      return err
    }
    t3, err := strconv.ParseFloat(fields[3], 64); if err != nil {
      return err
    }
    seqnames = append(seqnames, fields[0])
    from     = append(from,     int(t1))
    to       = append(to,       int(t2))
    values   = append(values,   t3)
  }
  if err := scanner.Err(); err != nil {
    return err
  }
  t, err := NewBedGraph(b.Name, seqnames, from, to, values)
  if err != nil {
    return err
  }
  *b = t
  return nil
}

func (b *BedGraph) Import(filename string) error {
  f, err := openFile(filename)
  if err != nil {
    return err
  }
  defer f.Close()

  if err := b.Read(f); err != nil {
    return fmt.Errorf("reading bedGraph `%s' failed: %w", filename, err)
  }
  if b.Name == "" {
    b.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
  }
  return nil
}
