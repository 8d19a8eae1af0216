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
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// A sample stored on the remote assembly service. Samples are identified
// by Id only, the genome is the assembly the sample was mapped to.
type SampleRef struct {
  Id     string
  Genome string
}

func NewSampleRef(id, genome string) SampleRef {
  return SampleRef{Id: id, Genome: genome}
}

func (sample SampleRef) String() string {
  return fmt.Sprintf("%s (%s)", sample.Id, sample.Genome)
}

/* -------------------------------------------------------------------------- */

// Chromosome interval on a given genome assembly. Coordinates are zero-based
// and half-open. Use NewGenomicRegion to construct a region from user input.
type GenomicRegion struct {
  Genome  string
  Seqname string
  Range
}

func NewGenomicRegion(genome, seqname string, from, to int) (GenomicRegion, error) {
  if from < 0 || to < 0 {
    return GenomicRegion{}, fmt.Errorf("invalid region %s:%d-%d: negative coordinate", seqname, from, to)
  }
  if from > to {
    return GenomicRegion{}, fmt.Errorf("invalid region %s:%d-%d: start after end", seqname, from, to)
  }
  if seqname == "" {
    return GenomicRegion{}, fmt.Errorf("invalid region: empty sequence name")
  }
  return GenomicRegion{Genome: genome, Seqname: seqname, Range: NewRange(from, to)}, nil
}

// Parse a region in the common `chr1:1,000-2,000' notation.
func ParseGenomicRegion(genome, s string) (GenomicRegion, error) {
  s = strings.Replace(strings.TrimSpace(s), ",", "", -1)
  i := strings.LastIndex(s, ":")
  if i <= 0 {
    return GenomicRegion{}, fmt.Errorf("invalid region `%s'", s)
  }
  t := strings.SplitN(s[i+1:], "-", 2)
  if len(t) != 2 {
    return GenomicRegion{}, fmt.Errorf("invalid region `%s'", s)
  }
  from, err := strconv.Atoi(t[0]); if err != nil {
    return GenomicRegion{}, fmt.Errorf("invalid region `%s': %w", s, err)
  }
  to, err := strconv.Atoi(t[1]); if err != nil {
    return GenomicRegion{}, fmt.Errorf("invalid region `%s': %w", s, err)
  }
  return NewGenomicRegion(genome, s[0:i], from, to)
}

func (r GenomicRegion) Start() int {
  return r.From
}

func (r GenomicRegion) End() int {
  return r.To
}

func (r GenomicRegion) String() string {
  return fmt.Sprintf("%s:%d-%d", r.Seqname, r.From, r.To)
}

/* -------------------------------------------------------------------------- */

// Bin width used for aggregated counts.
type Window int

func NewWindow(w int) (Window, error) {
  if w < 1 {
    return 0, &InvalidWindow{Window: w}
  }
  return Window(w), nil
}

// Number of bins of the given window spanning the region, the last bin
// may be only partially covered.
func (r GenomicRegion) NBins(window Window) int {
  return r.Range.NBins(int(window))
}

/* i/o
 * -------------------------------------------------------------------------- */

// Read regions from a BED file. Only the first three columns are used.
func ReadRegions(reader io.Reader, genome string) ([]GenomicRegion, error) {
  regions := []GenomicRegion{}
  scanner := bufio.NewScanner(reader)

  for scanner.Scan() {
    line := scanner.Text()
    if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
      continue
    }
    fields := strings.Fields(line)
    if len(fields) == 0 {
      continue
    }
    if len(fields) < 3 {
      return nil, fmt.Errorf("ReadRegions(): bed file must have at least three columns")
    }
    t1, err := strconv.ParseInt(fields[1], 10, 64); if err != nil {
      return nil, err
    }
    t2, err := strconv.ParseInt(fields[2], 10, 64); if err != nil {
      return nil, err
    }
    r, err := NewGenomicRegion(genome, fields[0], int(t1), int(t2))
    if err != nil {
      return nil, err
    }
    regions = append(regions, r)
  }
  return regions, scanner.Err()
}

func ImportRegions(filename, genome string) ([]GenomicRegion, error) {
  f, err := openFile(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()

  return ReadRegions(f, genome)
}
