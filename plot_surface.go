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

import "bytes"
import "fmt"
import "io"
import "io/ioutil"

import "gonum.org/v1/plot"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/vg"

/* -------------------------------------------------------------------------- */

// PlotSurface renders a track with gonum/plot. Every redraw replaces the
// image held by the surface.
type PlotSurface struct {
  Width, Height vg.Length
  // image format supported by gonum/plot, e.g. png or svg
  Format  string
  Redraws int

  title  string
  region GenomicRegion
  window Window
  style  TrackStyle
  values []float64
  min    float64
  max    float64
  image  bytes.Buffer
}

func NewPlotSurface(width, height vg.Length, format string) *PlotSurface {
  if format == "" {
    format = "png"
  }
  return &PlotSurface{Width: width, Height: height, Format: format, style: DefaultTrackStyle(), max: DefaultMinScale, window: 1}
}

func (s *PlotSurface) SetTitle(title string) {
  s.title = title
}

func (s *PlotSurface) SetRegion(region GenomicRegion, window Window) {
  s.region = region
  s.window = window
}

func (s *PlotSurface) SetStyle(style TrackStyle) {
  s.style = style
}

func (s *PlotSurface) BindData(values []float64) {
  s.values = values
}

func (s *PlotSurface) SetScale(min, max float64) {
  s.min = min
  s.max = max
}

/* -------------------------------------------------------------------------- */

// Coordinates of the bound values, each value is placed at the start of
// its bin. A final point closes the last bin at the end of the region.
func (s *PlotSurface) xys() plotter.XYs {
  n   := len(s.values)
  xys := make(plotter.XYs, n+1)
  for i, v := range s.values {
    xys[i].X = float64(s.region.From + i*int(s.window))
    xys[i].Y = v
  }
  if n > 0 {
    xys[n].X = float64(s.region.To)
    xys[n].Y = s.values[n-1]
  } else {
    xys = plotter.XYs{{X: float64(s.region.From)}, {X: float64(s.region.To)}}
  }
  return xys
}

func (s *PlotSurface) Redraw() error {
  p := plot.New()
  p.Title.Text   = s.title
  p.X.Label.Text = s.region.String()

  line, err := plotter.NewLine(s.xys())
  if err != nil {
    return fmt.Errorf("redraw `%s': %w", s.title, err)
  }
  line.Color = s.style.LineColor
  switch s.style.Style {
  case PlotFilled:
    line.FillColor = s.style.FillColor
  case PlotBars:
    line.StepStyle = plotter.PostStep
    line.FillColor = s.style.FillColor
  }
  p.Add(line)
  // fixed axis ranges, the scale is computed by the track
  p.X.Min = float64(s.region.From)
  p.X.Max = float64(s.region.To)
  p.Y.Min = s.min
  p.Y.Max = s.max

  w, err := p.WriterTo(s.Width, s.Height, s.Format)
  if err != nil {
    return fmt.Errorf("redraw `%s': %w", s.title, err)
  }
  s.image.Reset()
  if _, err := w.WriteTo(&s.image); err != nil {
    return fmt.Errorf("redraw `%s': %w", s.title, err)
  }
  s.Redraws++
  return nil
}

/* -------------------------------------------------------------------------- */

// Image produced by the last redraw.
func (s *PlotSurface) Bytes() []byte {
  return s.image.Bytes()
}

func (s *PlotSurface) WriteTo(w io.Writer) (int64, error) {
  n, err := w.Write(s.image.Bytes())
  return int64(n), err
}

func (s *PlotSurface) Save(filename string) error {
  if s.image.Len() == 0 {
    return fmt.Errorf("nothing to save, surface was never drawn")
  }
  return ioutil.WriteFile(filename, s.image.Bytes(), 0666)
}
