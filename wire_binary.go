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

import "encoding/binary"
import "strconv"

/* -------------------------------------------------------------------------- */

const binarySuffix   = "b"
const binaryIntWidth = 4

// Packed binary codec. Starts and counts are big-endian 32 bit integers,
// strands one byte per read. Metadata requests fall back to the text
// encoding.
type BinaryCodec struct {
  TextCodec
}

func (BinaryCodec) Name() string {
  return "binary"
}

func (codec BinaryCodec) Encode(req WireRequest) Resource {
  if req.Op.IsMetadata() {
    return codec.TextCodec.Encode(req)
  }
  if req.Op == OpCounts {
    return Resource{Segments: append(regionSegments(req.Op, req), strconv.Itoa(int(req.Window)), binarySuffix)}
  }
  return Resource{Segments: append(regionSegments(req.Op, req), binarySuffix)}
}

func (BinaryCodec) DecodeInts(op Operation, body []byte) ([]int, error) {
  if len(body) % binaryIntWidth != 0 {
    return nil, &TruncatedStream{Op: op.String(), Length: len(body), Width: binaryIntWidth}
  }
  r := make([]int, len(body)/binaryIntWidth)
  for i := range r {
    r[i] = int(int32(binary.BigEndian.Uint32(body[i*binaryIntWidth:])))
  }
  return r, nil
}

func (BinaryCodec) DecodeStrands(body []byte) (StrandResult, error) {
  r := make(StrandResult, len(body))
  for i, c := range body {
    r[i] = ParseStrand(c)
  }
  return r, nil
}

/* -------------------------------------------------------------------------- */

// Packed representation of integer results as served by the binary
// endpoints.
func EncodeBinaryInts(values []int) []byte {
  b := make([]byte, len(values)*binaryIntWidth)
  for i, v := range values {
    binary.BigEndian.PutUint32(b[i*binaryIntWidth:], uint32(int32(v)))
  }
  return b
}

func EncodeBinaryStrands(strands StrandResult) []byte {
  b := make([]byte, len(strands))
  for i, s := range strands {
    b[i] = byte(s)
  }
  return b
}
