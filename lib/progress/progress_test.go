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


package progress

/* -------------------------------------------------------------------------- */

import "bytes"
import "strings"
import "testing"

/* -------------------------------------------------------------------------- */

func TestProgress1(t *testing.T) {
  p := New(10, 5)
  p.Label = "regions"
  if p.K != 2 {
    t.Error("TestProgress1 failed!")
  }
  buf := bytes.Buffer{}
  for i := 0; i <= 10; i++ {
    p.Fprint(&buf, i)
  }
  // steps 0, 2, 4, 6, 8 and 10
  if n := strings.Count(buf.String(), "regions |"); n != 6 {
    t.Errorf("TestProgress1 failed: %d", n)
  }
  if !strings.HasSuffix(buf.String(), "100.00% (10/10)\n") {
    t.Error("TestProgress1 failed!")
  }
}

func TestProgress2(t *testing.T) {
  p := New(3, 100)
  if p.K != 1 {
    t.Error("TestProgress2 failed!")
  }
  if s := New(0, 100).Exec(0); !strings.Contains(s, "100.00%") {
    t.Error("TestProgress2 failed!")
  }
}
