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

/* -------------------------------------------------------------------------- */

type Strand byte

const (
  StrandPlus  Strand = '+'
  StrandMinus Strand = '-'
)

// Wire representation of strands: `-' is the minus strand, every other
// symbol is treated as plus strand.
func ParseStrand(c byte) Strand {
  if c == '-' {
    return StrandMinus
  }
  return StrandPlus
}

func (s Strand) String() string {
  return string(rune(s))
}

/* -------------------------------------------------------------------------- */

// Read start positions within a region in the order returned by the
// service. The positions are not necessarily sorted.
type StartsResult []int

// Strand of each read, position i belongs to the i-th entry of the
// StartsResult fetched for the same query.
type StrandResult []Strand

// Read counts, one entry per bin.
type CountsResult []int

type MappedReadCount int

// Starts and strands fetched jointly for the same sample and region.
type ReadsResult struct {
  Starts  StartsResult
  Strands StrandResult
}

func (r ReadsResult) Length() int {
  return len(r.Starts)
}

/* -------------------------------------------------------------------------- */

type StorageKind int

const (
  StorageUnsupported StorageKind = iota
  // legacy binary read track
  StorageBRT
  // binary vector track
  StorageBVT
)

func ParseStorageKind(s string) StorageKind {
  switch strings.ToLower(strings.TrimSpace(s)) {
  case "brt":
    return StorageBRT
  case "bvt":
    return StorageBVT
  default:
    return StorageUnsupported
  }
}

func (k StorageKind) String() string {
  switch k {
  case StorageBRT:
    return "brt"
  case StorageBVT:
    return "bvt"
  default:
    return "unsupported"
  }
}

// Raw classification payload returned by the type probe. A zero
// ReadLength means the service did not report it.
type CapabilityProbe struct {
  Kind       string
  ReadLength int
}

type SampleCapability struct {
  Kind       StorageKind
  ReadLength int
}

func (p CapabilityProbe) Capability() SampleCapability {
  return SampleCapability{Kind: ParseStorageKind(p.Kind), ReadLength: p.ReadLength}
}

func (c SampleCapability) HasReadLength() bool {
  return c.ReadLength > 0
}
