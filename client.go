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
import "fmt"
import "io"
import "net/http"
import "net/url"
import "strings"
import "time"

import "go.uber.org/zap"

/* -------------------------------------------------------------------------- */

const DefaultTimeout = 30*time.Second

// Base address of the assembly service together with the credentials
// attached to every request. Params are appended as query parameters,
// a non-empty Token is sent as bearer token.
type Endpoint struct {
  URL    string            `yaml:"url"`
  Token  string            `yaml:"token"`
  Params map[string]string `yaml:"params"`
}

/* -------------------------------------------------------------------------- */

type options struct {
  httpClient     *http.Client
  codec          WireCodec
  logger         *zap.Logger
  metrics        *Metrics
  binaryFastPath bool
}

type Option func(*options)

func WithHTTPClient(client *http.Client) Option {
  return func(o *options) { o.httpClient = client }
}

// Codec used for all data requests, the default is TextCodec.
func WithCodec(codec WireCodec) Option {
  return func(o *options) { o.codec = codec }
}

func WithLogger(logger *zap.Logger) Option {
  return func(o *options) { o.logger = logger }
}

func WithMetrics(metrics *Metrics) Option {
  return func(o *options) { o.metrics = metrics }
}

// Use the binary codec for samples with read support (BRT).
func WithBinaryFastPath(enabled bool) Option {
  return func(o *options) { o.binaryFastPath = enabled }
}

func newOptions(opts []Option) options {
  o := options{}
  for _, opt := range opts {
    opt(&o)
  }
  if o.httpClient == nil {
    o.httpClient = &http.Client{Timeout: DefaultTimeout}
  }
  if o.codec == nil {
    o.codec = TextCodec{}
  }
  if o.logger == nil {
    o.logger = zap.NewNop()
  }
  if o.metrics == nil {
    o.metrics = newUnregisteredMetrics()
  }
  return o
}

/* -------------------------------------------------------------------------- */

// TrackDataClient issues requests against the assembly service and decodes
// the responses with a single codec. Apart from the endpoint it holds no
// state, all methods are safe for concurrent use.
type TrackDataClient struct {
  base    *url.URL
  params  url.Values
  token   string
  client  *http.Client
  codec   WireCodec
  logger  *zap.Logger
  metrics *Metrics
}

func NewTrackDataClient(endpoint Endpoint, opts ...Option) (*TrackDataClient, error) {
  base, err := url.Parse(endpoint.URL)
  if err != nil {
    return nil, fmt.Errorf("invalid endpoint url: %w", err)
  }
  if base.Scheme == "" || base.Host == "" {
    return nil, fmt.Errorf("invalid endpoint url `%s'", endpoint.URL)
  }
  params := url.Values{}
  for k, v := range endpoint.Params {
    params.Set(k, v)
  }
  o := newOptions(opts)
  return &TrackDataClient{
    base   : base,
    params : params,
    token  : endpoint.Token,
    client : o.httpClient,
    codec  : o.codec,
    logger : o.logger,
    metrics: o.metrics }, nil
}

// Return a client sharing the endpoint but decoding with the given codec.
func (c *TrackDataClient) Using(codec WireCodec) *TrackDataClient {
  r := *c
  r.codec = codec
  return &r
}

func (c *TrackDataClient) Codec() WireCodec {
  return c.codec
}

/* -------------------------------------------------------------------------- */

func (c *TrackDataClient) resolve(resource Resource) *url.URL {
  u := c.base.JoinPath(resource.Segments...)
  q := url.Values{}
  for k, v := range c.params {
    q[k] = v
  }
  for k, v := range resource.Query {
    q[k] = v
  }
  u.RawQuery = q.Encode()
  return u
}

func (c *TrackDataClient) get(ctx context.Context, req WireRequest) (body []byte, err error) {
  resource := c.codec.Encode(req)
  start    := time.Now()
  defer func() {
    c.metrics.observeRequest(req.Op, c.codec.Name(), err, start)
  }()
  c.logger.Debug("request",
    zap.String("op", req.Op.String()),
    zap.String("codec", c.codec.Name()),
    zap.String("resource", resource.String()))

  hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(resource).String(), nil)
  if err != nil {
    return nil, fmt.Errorf("%s: %w", req.Op, err)
  }
  if c.token != "" {
    hreq.Header.Set("Authorization", "Bearer " + c.token)
  }
  resp, err := c.client.Do(hreq)
  if err != nil {
    return nil, &TransportError{Op: req.Op.String(), Err: err}
  }
  defer resp.Body.Close()

  body, err = io.ReadAll(resp.Body)
  if err != nil {
    return nil, &TransportError{Op: req.Op.String(), Err: err}
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    msg := strings.TrimSpace(string(body))
    if len(msg) > 256 {
      msg = msg[0:256]
    }
    return nil, &RemoteRejected{Op: req.Op.String(), Status: resp.StatusCode, Message: msg}
  }
  return body, nil
}

/* -------------------------------------------------------------------------- */

func (c *TrackDataClient) FetchStarts(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (StartsResult, error) {
  if window < 1 {
    return nil, &InvalidWindow{Op: OpStarts.String(), Window: int(window)}
  }
  body, err := c.get(ctx, WireRequest{Op: OpStarts, Sample: sample, Region: region, Window: window})
  if err != nil {
    return nil, err
  }
  r, err := c.codec.DecodeInts(OpStarts, body)
  if err != nil {
    return nil, err
  }
  return StartsResult(r), nil
}

func (c *TrackDataClient) FetchStrands(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (StrandResult, error) {
  if window < 1 {
    return nil, &InvalidWindow{Op: OpStrands.String(), Window: int(window)}
  }
  body, err := c.get(ctx, WireRequest{Op: OpStrands, Sample: sample, Region: region, Window: window})
  if err != nil {
    return nil, err
  }
  return c.codec.DecodeStrands(body)
}

// Counts are binned by the service, the result has exactly one entry
// for each bin of the region.
func (c *TrackDataClient) FetchCounts(ctx context.Context, sample SampleRef, region GenomicRegion, window Window) (CountsResult, error) {
  if window < 1 {
    return nil, &InvalidWindow{Op: OpCounts.String(), Window: int(window)}
  }
  body, err := c.get(ctx, WireRequest{Op: OpCounts, Sample: sample, Region: region, Window: window})
  if err != nil {
    return nil, err
  }
  r, err := c.codec.DecodeInts(OpCounts, body)
  if err != nil {
    return nil, err
  }
  if n := region.NBins(window); len(r) != n {
    return nil, &MalformedResponse{Op: OpCounts.String(), Reason: fmt.Sprintf("expected %d bins, got %d", n, len(r))}
  }
  return CountsResult(r), nil
}

func (c *TrackDataClient) FetchMappedReads(ctx context.Context, sample SampleRef, genome string, window Window) (MappedReadCount, error) {
  body, err := c.get(ctx, WireRequest{Op: OpMapped, Sample: sample, Genome: genome, Window: window})
  if err != nil {
    return 0, err
  }
  return c.codec.DecodeMapped(body)
}

func (c *TrackDataClient) FetchGenome(ctx context.Context, sample SampleRef) (string, error) {
  body, err := c.get(ctx, WireRequest{Op: OpGenome, Sample: sample})
  if err != nil {
    return "", err
  }
  return c.codec.DecodeGenome(body)
}

func (c *TrackDataClient) FetchCapabilityProbe(ctx context.Context, sample SampleRef) (CapabilityProbe, error) {
  body, err := c.get(ctx, WireRequest{Op: OpType, Sample: sample})
  if err != nil {
    return CapabilityProbe{}, err
  }
  return c.codec.DecodeCapability(body)
}

func (c *TrackDataClient) FetchReadLength(ctx context.Context, sample SampleRef) (int, error) {
  body, err := c.get(ctx, WireRequest{Op: OpLength, Sample: sample})
  if err != nil {
    return 0, err
  }
  return c.codec.DecodeReadLength(body)
}
