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

import "context"
import "errors"
import "fmt"
import "sync"

import "go.uber.org/zap"

/* -------------------------------------------------------------------------- */

type TrackState int

const (
  TrackEmpty TrackState = iota
  TrackLoading
  TrackReady
  TrackFailed
)

func (s TrackState) String() string {
  switch s {
  case TrackEmpty:
    return "empty"
  case TrackLoading:
    return "loading"
  case TrackReady:
    return "ready"
  default:
    return "failed"
  }
}

// Returned by SetRegion if the result was discarded because a later
// region was requested in the meantime.
var ErrSuperseded = errors.New("region superseded by a later request")

/* -------------------------------------------------------------------------- */

// RenderableTrack binds the data of a track kind for the displayed region
// to a rendering surface. Property and region changes only mark the track
// as pending, the surface is redrawn by ApplyPendingUpdate.
type RenderableTrack struct {
  kind    TrackKind
  surface RenderSurface
  retry   RetryPolicy
  logger  *zap.Logger

  mu         sync.Mutex
  state      TrackState
  err        error
  data       TrackData
  hasData    bool
  style      TrackStyle
  render     RenderConfig
  generation uint64
  cancel     context.CancelFunc
  pending    bool

  // serializes access to the surface
  drawMu     sync.Mutex
}

func NewRenderableTrack(kind TrackKind, surface RenderSurface, render RenderConfig, retry RetryPolicy, logger *zap.Logger) (*RenderableTrack, error) {
  if logger == nil {
    logger = zap.NewNop()
  }
  if retry.MaxAttempts < 1 {
    retry.MaxAttempts = 1
  }
  if err := kind.CreateGraph(surface); err != nil {
    return nil, err
  }
  return &RenderableTrack{
    kind   : kind,
    surface: surface,
    retry  : retry,
    logger : logger.With(zap.String("track", kind.GetName())),
    style  : KindStyle(kind),
    render : render }, nil
}

func (t *RenderableTrack) Kind() TrackKind {
  return t.kind
}

/* -------------------------------------------------------------------------- */

// Load the data of a new region. The track is Loading until the data
// arrives and then either Ready with the new data bound, or Failed with
// the previously bound data left in place. If another region is requested
// before the data arrives, the result is discarded and ErrSuperseded is
// returned.
func (t *RenderableTrack) SetRegion(ctx context.Context, region GenomicRegion, window Window) error {
  t.mu.Lock()
  if t.cancel != nil {
    t.cancel()
    t.cancel = nil
  }
  t.generation++
  if window < 1 {
    t.state = TrackFailed
    t.err   = fmt.Errorf("region %v: %w", region, &InvalidWindow{Window: int(window)})
    t.mu.Unlock()
    return t.err
  }
  generation := t.generation
  ctx, cancel := context.WithCancel(ctx)
  t.cancel = cancel
  t.state  = TrackLoading
  t.mu.Unlock()
  defer cancel()

  var data TrackData
  err := t.retry.Do(ctx, func() error {
    var err error
    data, err = t.kind.UpdateGraph(ctx, region, window)
    return err
  })

  t.mu.Lock()
  defer t.mu.Unlock()

  if generation != t.generation {
    t.logger.Debug("discarding stale region",
      zap.Stringer("region", region))
    return ErrSuperseded
  }
  t.cancel = nil
  if err != nil {
    t.state = TrackFailed
    t.err   = err
    t.logger.Warn("loading region failed",
      zap.Stringer("region", region),
      zap.Stringer("kind", ClassifyError(err)),
      zap.Error(err))
    return err
  }
  t.state   = TrackReady
  t.err     = nil
  t.data    = data
  t.hasData = true
  t.pending = true
  return nil
}

func (t *RenderableTrack) State() (TrackState, error) {
  t.mu.Lock()
  defer t.mu.Unlock()
  return t.state, t.err
}

func (t *RenderableTrack) ErrorKind() ErrorKind {
  t.mu.Lock()
  defer t.mu.Unlock()
  return ClassifyError(t.err)
}

// Currently bound data. The second return value is false if no region
// was loaded successfully yet.
func (t *RenderableTrack) Data() (TrackData, bool) {
  t.mu.Lock()
  defer t.mu.Unlock()
  return t.data, t.hasData
}

/* -------------------------------------------------------------------------- */

func (t *RenderableTrack) ComputeAutoScale(normalize bool) float64 {
  t.mu.Lock()
  render := t.render
  data   := t.data
  t.mu.Unlock()
  return ComputeScale(render, data, normalize)
}

func (t *RenderableTrack) update(f func()) {
  t.mu.Lock()
  defer t.mu.Unlock()
  f()
  t.pending = true
}

func (t *RenderableTrack) SetStyle(style TrackStyle) {
  t.update(func() { t.style = style })
}

func (t *RenderableTrack) Style() TrackStyle {
  t.mu.Lock()
  defer t.mu.Unlock()
  return t.style
}

func (t *RenderableTrack) SetAutoScale(autoScale bool) {
  t.update(func() { t.render.AutoScale = autoScale })
}

func (t *RenderableTrack) SetFixedScale(scale float64) {
  t.update(func() { t.render.FixedScale = scale })
}

func (t *RenderableTrack) SetMinScale(scale float64) {
  t.update(func() { t.render.MinScale = scale })
}

func (t *RenderableTrack) SetNormalize(normalize bool) {
  t.update(func() { t.render.Normalize = normalize })
}

func (t *RenderableTrack) Pending() bool {
  t.mu.Lock()
  defer t.mu.Unlock()
  return t.pending
}

// Redraw the surface if anything changed since the last update. Returns
// true if the surface was redrawn.
func (t *RenderableTrack) ApplyPendingUpdate() (bool, error) {
  t.drawMu.Lock()
  defer t.drawMu.Unlock()

  t.mu.Lock()
  if !t.pending || !t.hasData {
    t.mu.Unlock()
    return false, nil
  }
  data   := t.data
  style  := t.style
  values := data.Normalized(t.render.Normalize)
  scale  := ComputeScale(t.render, data, t.render.Normalize)
  t.pending = false
  t.mu.Unlock()

  if s, ok := t.surface.(StyledSurface); ok {
    s.SetStyle(style)
    s.SetRegion(data.Region, data.Window)
  }
  t.surface.BindData(values)
  t.surface.SetScale(0, scale)
  return true, t.surface.Redraw()
}

// Description of the track including its style.
func (t *RenderableTrack) ToSerializable() TrackDescriptor {
  d := t.kind.ToSerializable()
  s := t.Style()
  d.Color     = HTMLColor(s.LineColor)
  d.FillColor = HTMLColor(s.FillColor)
  d.Style     = s.Style.String()
  return d
}
