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

import "math"

/* -------------------------------------------------------------------------- */

// Lower bound of automatically computed scales, so that a region without
// signal still has a visible axis range.
const DefaultMinScale = 1.0

// Maximum of the values multiplied by factor, but at least floor.
func AutoScale(values []float64, factor, floor float64) float64 {
  y := 0.0
  if len(values) > 0 {
    y = fMaxSlice(values)*factor
  }
  return math.Max(floor, y)
}

// Upper end of the y-axis for the given data. Only the data of the bound
// region is inspected.
func ComputeScale(config RenderConfig, data TrackData, normalize bool) float64 {
  if !config.AutoScale {
    return config.FixedScale
  }
  factor := 1.0
  if normalize && data.NormFactor > 0 {
    factor = data.NormFactor
  }
  return AutoScale(data.Values, factor, config.MinScale)
}
