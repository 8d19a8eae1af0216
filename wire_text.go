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
import "fmt"
import "net/url"
import "strconv"

/* -------------------------------------------------------------------------- */

// Structured text codec. Responses are JSON arrays whose first element
// carries the result in a single well-known field.
type TextCodec struct{}

func (TextCodec) Name() string {
  return "text"
}

func (TextCodec) Encode(req WireRequest) Resource {
  switch req.Op {
  case OpStarts, OpStrands:
    return Resource{Segments: regionSegments(req.Op, req)}
  case OpCounts:
    q := url.Values{}
    q.Set("id",  req.Sample.Id)
    q.Set("g",   req.Region.Genome)
    q.Set("chr", req.Region.Seqname)
    q.Set("s",   strconv.Itoa(req.Region.From))
    q.Set("e",   strconv.Itoa(req.Region.To))
    q.Set("bw",  strconv.Itoa(int(req.Window)))
    return Resource{Segments: []string{"counts"}, Query: q}
  case OpMapped:
    q := url.Values{}
    q.Set("id", req.Sample.Id)
    q.Set("g",  req.Genome)
    q.Set("bw", strconv.Itoa(int(req.Window)))
    return Resource{Segments: []string{"mapped"}, Query: q}
  case OpType:
    q := url.Values{}
    q.Set("id", req.Sample.Id)
    return Resource{Segments: []string{"type"}, Query: q}
  default:
    // genome/{id}, length/{id}
    return Resource{Segments: []string{req.Op.String(), req.Sample.Id}}
  }
}

/* -------------------------------------------------------------------------- */

func textField(op Operation, body []byte, field string) (json.RawMessage, error) {
  var doc []map[string]json.RawMessage
  if err := json.Unmarshal(body, &doc); err != nil {
    return nil, &MalformedResponse{Op: op.String(), Reason: err.Error()}
  }
  if len(doc) == 0 {
    return nil, &MalformedResponse{Op: op.String(), Reason: "empty document"}
  }
  raw, ok := doc[0][field]
  if !ok || string(raw) == "null" {
    return nil, &MalformedResponse{Op: op.String(), Reason: fmt.Sprintf("field `%s' missing", field)}
  }
  return raw, nil
}

func (TextCodec) DecodeInts(op Operation, body []byte) ([]int, error) {
  field := "s"
  if op == OpCounts {
    field = "c"
  }
  raw, err := textField(op, body, field)
  if err != nil {
    return nil, err
  }
  t := []*int{}
  if err := json.Unmarshal(raw, &t); err != nil {
    return nil, &MalformedResponse{Op: op.String(), Reason: fmt.Sprintf("field `%s' is not an integer array", field)}
  }
  r := make([]int, len(t))
  for i, x := range t {
    if x == nil {
      return nil, &MalformedResponse{Op: op.String(), Reason: fmt.Sprintf("field `%s' has null at position %d", field, i)}
    }
    r[i] = *x
  }
  return r, nil
}

func (TextCodec) DecodeStrands(body []byte) (StrandResult, error) {
  raw, err := textField(OpStrands, body, "s")
  if err != nil {
    return nil, err
  }
  t := []string{}
  if err := json.Unmarshal(raw, &t); err != nil {
    return nil, &MalformedResponse{Op: OpStrands.String(), Reason: "field `s' is not a string array"}
  }
  r := make(StrandResult, len(t))
  for i, s := range t {
    if len(s) != 1 {
      return nil, &MalformedResponse{Op: OpStrands.String(), Reason: fmt.Sprintf("invalid strand symbol `%s'", s)}
    }
    r[i] = ParseStrand(s[0])
  }
  return r, nil
}

func (TextCodec) DecodeMapped(body []byte) (MappedReadCount, error) {
  var doc []json.RawMessage
  if err := json.Unmarshal(body, &doc); err != nil {
    return 0, &MalformedResponse{Op: OpMapped.String(), Reason: err.Error()}
  }
  if len(doc) == 0 {
    return 0, &MalformedResponse{Op: OpMapped.String(), Reason: "empty document"}
  }
  var n int
  if err := json.Unmarshal(doc[0], &n); err != nil {
    return 0, &MalformedResponse{Op: OpMapped.String(), Reason: "first element is not an integer"}
  }
  return MappedReadCount(n), nil
}

func (TextCodec) DecodeGenome(body []byte) (string, error) {
  raw, err := textField(OpGenome, body, "genome")
  if err != nil {
    return "", err
  }
  var s string
  if err := json.Unmarshal(raw, &s); err != nil || s == "" {
    return "", &MalformedResponse{Op: OpGenome.String(), Reason: "field `genome' is not a string"}
  }
  return s, nil
}

// The type probe answers with [{"type": kind, "length": n}]. A bare
// string element is accepted as kind without read length.
func (TextCodec) DecodeCapability(body []byte) (CapabilityProbe, error) {
  var doc []json.RawMessage
  if err := json.Unmarshal(body, &doc); err != nil {
    return CapabilityProbe{}, &MalformedResponse{Op: OpType.String(), Reason: err.Error()}
  }
  if len(doc) == 0 {
    return CapabilityProbe{}, &MalformedResponse{Op: OpType.String(), Reason: "empty document"}
  }
  var kind string
  if err := json.Unmarshal(doc[0], &kind); err == nil {
    return CapabilityProbe{Kind: kind}, nil
  }
  var obj struct {
    Type   *string `json:"type"`
    Length *int    `json:"length"`
  }
  if err := json.Unmarshal(doc[0], &obj); err != nil || obj.Type == nil {
    return CapabilityProbe{}, &MalformedResponse{Op: OpType.String(), Reason: "field `type' missing"}
  }
  probe := CapabilityProbe{Kind: *obj.Type}
  if obj.Length != nil && *obj.Length > 0 {
    probe.ReadLength = *obj.Length
  }
  return probe, nil
}

func (TextCodec) DecodeReadLength(body []byte) (int, error) {
  raw, err := textField(OpLength, body, "length")
  if err != nil {
    return 0, err
  }
  var n int
  if err := json.Unmarshal(raw, &n); err != nil || n <= 0 {
    return 0, &MalformedResponse{Op: OpLength.String(), Reason: "field `length' is not a positive integer"}
  }
  return n, nil
}
