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

import "reflect"
import "testing"

/* -------------------------------------------------------------------------- */

// Equivalent payloads of the text and the binary protocol.
var fixtureStartsText  = []byte(`[{"s":[1500,1200,-3,1800,70000]}]`)
var fixtureStartsBin   = []byte{
  0x00, 0x00, 0x05, 0xdc,
  0x00, 0x00, 0x04, 0xb0,
  0xff, 0xff, 0xff, 0xfd,
  0x00, 0x00, 0x07, 0x08,
  0x00, 0x01, 0x11, 0x70 }
var fixtureStrandsText = []byte(`[{"s":["+","-","-","+","."]}]`)
var fixtureStrandsBin  = []byte("+--+.")
var fixtureCountsText  = []byte(`[{"c":[0,3,7,2]}]`)
var fixtureCountsBin   = []byte{
  0, 0, 0, 0,
  0, 0, 0, 3,
  0, 0, 0, 7,
  0, 0, 0, 2 }

/* -------------------------------------------------------------------------- */

func TestWireCodec1(t *testing.T) {
  text   := TextCodec{}
  binary := BinaryCodec{}

  s1, err1 := text  .DecodeInts(OpStarts, fixtureStartsText)
  s2, err2 := binary.DecodeInts(OpStarts, fixtureStartsBin)
  if err1 != nil || err2 != nil {
    t.Fatal(err1, err2)
  }
  if !reflect.DeepEqual(s1, s2) || !reflect.DeepEqual(s1, []int{1500, 1200, -3, 1800, 70000}) {
    t.Errorf("TestWireCodec1 failed: %v != %v", s1, s2)
  }
  r1, err1 := text  .DecodeStrands(fixtureStrandsText)
  r2, err2 := binary.DecodeStrands(fixtureStrandsBin)
  if err1 != nil || err2 != nil {
    t.Fatal(err1, err2)
  }
  if !reflect.DeepEqual(r1, r2) || !reflect.DeepEqual(r1, StrandResult{'+', '-', '-', '+', '+'}) {
    t.Errorf("TestWireCodec1 failed: %v != %v", r1, r2)
  }
  c1, err1 := text  .DecodeInts(OpCounts, fixtureCountsText)
  c2, err2 := binary.DecodeInts(OpCounts, fixtureCountsBin)
  if err1 != nil || err2 != nil {
    t.Fatal(err1, err2)
  }
  if !reflect.DeepEqual(c1, c2) || len(c1) != 4 {
    t.Errorf("TestWireCodec1 failed: %v != %v", c1, c2)
  }
  if !reflect.DeepEqual(EncodeBinaryInts(s1), fixtureStartsBin) {
    t.Error("TestWireCodec1 failed!")
  }
}

func TestWireCodec2(t *testing.T) {
  // truncated binary streams are always reported
  _, err := BinaryCodec{}.DecodeInts(OpCounts, fixtureCountsBin[0:15])
  if ClassifyError(err) != ErrorTruncatedStream {
    t.Errorf("TestWireCodec2 failed: %v", err)
  }
  if r, err := (BinaryCodec{}).DecodeInts(OpStarts, []byte{}); err != nil || len(r) != 0 {
    t.Error("TestWireCodec2 failed!")
  }
}

func TestWireCodec3(t *testing.T) {
  text := TextCodec{}
  for _, body := range []string{`[]`, `[{"x":[1]}]`, `[{"s":5}]`, `{"s":[1]}`, `[{"s":[1.5]}]`, `garbage`} {
    if _, err := text.DecodeInts(OpStarts, []byte(body)); ClassifyError(err) != ErrorMalformedResponse {
      t.Errorf("TestWireCodec3 failed for `%s': %v", body, err)
    }
  }
  if _, err := text.DecodeStrands([]byte(`[{"s":["+-"]}]`)); ClassifyError(err) != ErrorMalformedResponse {
    t.Error("TestWireCodec3 failed!")
  }
  if _, err := text.DecodeInts(OpCounts, []byte(`[{"s":[1]}]`)); ClassifyError(err) != ErrorMalformedResponse {
    t.Error("TestWireCodec3 failed!")
  }
}

func TestWireCodec4(t *testing.T) {
  text := TextCodec{}
  if p, err := text.DecodeCapability([]byte(`[{"type":"brt","length":101}]`)); err != nil || p.Capability() != (SampleCapability{StorageBRT, 101}) {
    t.Errorf("TestWireCodec4 failed: %v %v", p, err)
  }
  if p, err := text.DecodeCapability([]byte(`[{"type":"bvt"}]`)); err != nil || p.Capability() != (SampleCapability{StorageBVT, 0}) {
    t.Errorf("TestWireCodec4 failed: %v %v", p, err)
  }
  if p, err := text.DecodeCapability([]byte(`["brt"]`)); err != nil || p.Capability().Kind != StorageBRT {
    t.Errorf("TestWireCodec4 failed: %v %v", p, err)
  }
  if p, err := text.DecodeCapability([]byte(`[{"type":"bam"}]`)); err != nil || p.Capability().Kind != StorageUnsupported {
    t.Errorf("TestWireCodec4 failed: %v %v", p, err)
  }
  if _, err := text.DecodeCapability([]byte(`[{"length":10}]`)); ClassifyError(err) != ErrorMalformedResponse {
    t.Error("TestWireCodec4 failed!")
  }
  if n, err := text.DecodeMapped([]byte(`[12345]`)); err != nil || n != 12345 {
    t.Error("TestWireCodec4 failed!")
  }
  if g, err := text.DecodeGenome([]byte(`[{"genome":"mm10"}]`)); err != nil || g != "mm10" {
    t.Error("TestWireCodec4 failed!")
  }
  if n, err := text.DecodeReadLength([]byte(`[{"length":36}]`)); err != nil || n != 36 {
    t.Error("TestWireCodec4 failed!")
  }
}

func TestWireCodec5(t *testing.T) {
  region, _ := NewGenomicRegion("hg19", "chr1", 100, 500)
  req := WireRequest{Op: OpCounts, Sample: NewSampleRef("7", "hg19"), Region: region, Window: 50}

  if s := (TextCodec{}).Encode(req).String(); s != "counts?bw=50&chr=chr1&e=500&g=hg19&id=7&s=100" {
    t.Errorf("TestWireCodec5 failed: %s", s)
  }
  if s := (BinaryCodec{}).Encode(req).String(); s != "counts/7/hg19/chr1/100/500/50/b" {
    t.Errorf("TestWireCodec5 failed: %s", s)
  }
  req.Op = OpStarts
  if s := (BinaryCodec{}).Encode(req).String(); s != "starts/7/hg19/chr1/100/500/b" {
    t.Errorf("TestWireCodec5 failed: %s", s)
  }
  req.Op = OpType
  if s1, s2 := (TextCodec{}).Encode(req).String(), (BinaryCodec{}).Encode(req).String(); s1 != s2 || s1 != "type?id=7" {
    t.Errorf("TestWireCodec5 failed: %s %s", s1, s2)
  }
}

func TestWireCodec6(t *testing.T) {
  text := TextCodec{}
  for _, body := range []string{`[{"s":[1,null]}]`, `[{"s":[null]}]`} {
    if _, err := text.DecodeInts(OpStarts, []byte(body)); ClassifyError(err) != ErrorMalformedResponse {
      t.Errorf("TestWireCodec6 failed: %s", body)
    }
  }
  if _, err := text.DecodeInts(OpCounts, []byte(`[{"c":[0,null,2]}]`)); ClassifyError(err) != ErrorMalformedResponse {
    t.Error("TestWireCodec6 failed!")
  }
  // metadata requests are encoded identically by both codecs
  region, _ := NewGenomicRegion("hg19", "chr1", 100, 500)
  for _, op := range []Operation{OpMapped, OpGenome, OpType, OpLength} {
    req := WireRequest{Op: op, Sample: NewSampleRef("7", "hg19"), Region: region, Window: 50, Genome: "hg19"}
    if s1, s2 := text.Encode(req).String(), (BinaryCodec{}).Encode(req).String(); s1 != s2 || !op.IsMetadata() {
      t.Errorf("TestWireCodec6 failed: %s != %s", s1, s2)
    }
  }
  if OpStarts.IsMetadata() || OpCounts.IsMetadata() {
    t.Error("TestWireCodec6 failed!")
  }
}
