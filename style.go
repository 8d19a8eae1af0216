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
import "image/color"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

type PlotStyle int

const (
  PlotLines PlotStyle = iota
  PlotFilled
  PlotBars
)

func ParsePlotStyle(s string) (PlotStyle, error) {
  switch strings.ToLower(s) {
  case "lines", "line":
    return PlotLines, nil
  case "filled", "fill", "":
    return PlotFilled, nil
  case "bars", "bar":
    return PlotBars, nil
  default:
    return 0, fmt.Errorf("invalid plot style `%s'", s)
  }
}

func (s PlotStyle) String() string {
  switch s {
  case PlotLines:
    return "lines"
  case PlotBars:
    return "bars"
  default:
    return "filled"
  }
}

/* -------------------------------------------------------------------------- */

type TrackStyle struct {
  LineColor color.RGBA
  FillColor color.RGBA
  Style     PlotStyle
}

func DefaultTrackStyle() TrackStyle {
  return TrackStyle{
    LineColor: color.RGBA{0x2c, 0x5a, 0xa0, 0xff},
    FillColor: color.RGBA{0x6f, 0x9f, 0xd8, 0xff},
    Style    : PlotFilled }
}

// Parse a color in html notation, i.e. `#rrggbb' or `#rrggbbaa'.
func ParseHTMLColor(s string) (color.RGBA, error) {
  t := strings.TrimPrefix(strings.TrimSpace(s), "#")
  if len(t) != 6 && len(t) != 8 {
    return color.RGBA{}, fmt.Errorf("invalid color `%s'", s)
  }
  v, err := strconv.ParseUint(t, 16, 32)
  if err != nil {
    return color.RGBA{}, fmt.Errorf("invalid color `%s'", s)
  }
  if len(t) == 6 {
    v = v << 8 | 0xff
  }
  return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func HTMLColor(c color.RGBA) string {
  if c.A == 0xff {
    return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
  }
  return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Apply the style attributes of a descriptor, empty fields keep the
// current value.
func (style TrackStyle) Merge(d TrackDescriptor) (TrackStyle, error) {
  var err error
  if d.Color != "" {
    if style.LineColor, err = ParseHTMLColor(d.Color); err != nil {
      return style, err
    }
  }
  if d.FillColor != "" {
    if style.FillColor, err = ParseHTMLColor(d.FillColor); err != nil {
      return style, err
    }
  }
  if d.Style != "" {
    if style.Style, err = ParsePlotStyle(d.Style); err != nil {
      return style, err
    }
  }
  return style, nil
}
