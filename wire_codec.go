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

import "fmt"
import "net/url"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

type Operation int

const (
  OpStarts Operation = iota
  OpStrands
  OpCounts
  OpMapped
  OpGenome
  OpType
  OpLength
)

func (op Operation) String() string {
  switch op {
  case OpStarts:
    return "starts"
  case OpStrands:
    return "strands"
  case OpCounts:
    return "counts"
  case OpMapped:
    return "mapped"
  case OpGenome:
    return "genome"
  case OpType:
    return "type"
  case OpLength:
    return "length"
  default:
    return fmt.Sprintf("op(%d)", int(op))
  }
}

// Metadata operations are always encoded as structured text.
func (op Operation) IsMetadata() bool {
  return op == OpMapped || op == OpGenome || op == OpType || op == OpLength
}

/* -------------------------------------------------------------------------- */

// Logical request against the assembly service. Region and Window are
// ignored by operations that do not need them, Genome is only used by
// OpMapped.
type WireRequest struct {
  Op     Operation
  Sample SampleRef
  Region GenomicRegion
  Window Window
  Genome string
}

// Resource addressed relative to the service base URL.
type Resource struct {
  Segments []string
  Query    url.Values
}

func (r Resource) String() string {
  s := strings.Join(r.Segments, "/")
  if len(r.Query) > 0 {
    s += "?" + r.Query.Encode()
  }
  return s
}

// A WireCodec translates logical requests to resources and decodes
// response bodies. Both implementations must decode equivalent
// payloads to identical results.
type WireCodec interface {
  Name() string
  Encode(req WireRequest) Resource
  DecodeInts(op Operation, body []byte) ([]int, error)
  DecodeStrands(body []byte) (StrandResult, error)
  DecodeMapped(body []byte) (MappedReadCount, error)
  DecodeGenome(body []byte) (string, error)
  DecodeCapability(body []byte) (CapabilityProbe, error)
  DecodeReadLength(body []byte) (int, error)
}

func NewWireCodec(name string) (WireCodec, error) {
  switch strings.ToLower(name) {
  case "", "text", "json":
    return TextCodec{}, nil
  case "binary", "b":
    return BinaryCodec{}, nil
  default:
    return nil, fmt.Errorf("unknown wire codec `%s'", name)
  }
}

/* -------------------------------------------------------------------------- */

func regionSegments(op Operation, req WireRequest) []string {
  return []string{
    op.String(),
    req.Sample.Id,
    req.Region.Genome,
    req.Region.Seqname,
    strconv.Itoa(req.Region.From),
    strconv.Itoa(req.Region.To) }
}
