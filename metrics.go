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

import "time"

import "github.com/prometheus/client_golang/prometheus"

/* -------------------------------------------------------------------------- */

// Prometheus collectors shared by the client and the capability cache.
type Metrics struct {
  Requests         *prometheus.CounterVec
  RequestDuration  *prometheus.HistogramVec
  CapabilityProbes prometheus.Counter
  CacheHits        prometheus.Counter
  CacheMisses      prometheus.Counter
}

// Create collectors and register them with reg. The collectors are left
// unregistered if reg is nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
  m := &Metrics{
    Requests: prometheus.NewCounterVec(
      prometheus.CounterOpts{
        Namespace: "gotracks",
        Name:      "requests_total",
        Help:      "Requests issued against the assembly service.",
      },
      []string{"op", "codec", "outcome"}),
    RequestDuration: prometheus.NewHistogramVec(
      prometheus.HistogramOpts{
        Namespace: "gotracks",
        Name:      "request_duration_seconds",
        Help:      "Duration of requests against the assembly service.",
        Buckets:   prometheus.DefBuckets,
      },
      []string{"op"}),
    CapabilityProbes: prometheus.NewCounter(
      prometheus.CounterOpts{
        Namespace: "gotracks",
        Name:      "capability_probes_total",
        Help:      "Sample classification requests.",
      }),
    CacheHits: prometheus.NewCounter(
      prometheus.CounterOpts{
        Namespace: "gotracks",
        Name:      "capability_cache_hits_total",
        Help:      "Capability lookups answered from the cache.",
      }),
    CacheMisses: prometheus.NewCounter(
      prometheus.CounterOpts{
        Namespace: "gotracks",
        Name:      "capability_cache_misses_total",
        Help:      "Capability lookups that required a probe or joined one in flight.",
      }),
  }
  if reg != nil {
    for _, c := range []prometheus.Collector{m.Requests, m.RequestDuration, m.CapabilityProbes, m.CacheHits, m.CacheMisses} {
      if err := reg.Register(c); err != nil {
        return nil, err
      }
    }
  }
  return m, nil
}

func newUnregisteredMetrics() *Metrics {
  m, _ := NewMetrics(nil)
  return m
}

func (m *Metrics) observeRequest(op Operation, codec string, err error, start time.Time) {
  outcome := "ok"
  if err != nil {
    outcome = ClassifyError(err).String()
  }
  m.Requests.WithLabelValues(op.String(), codec, outcome).Inc()
  m.RequestDuration.WithLabelValues(op.String()).Observe(time.Since(start).Seconds())
}
