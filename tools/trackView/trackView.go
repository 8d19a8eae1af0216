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


package main

/* -------------------------------------------------------------------------- */

import   "context"
import   "fmt"
import   "log"
import   "os"
import   "strconv"

import   "github.com/pborman/getopt"
import   "go.uber.org/zap"
import   "gonum.org/v1/plot/vg"

import . "github.com/pbenner/gotracks"
import   "github.com/pbenner/gotracks/lib/progress"

/* -------------------------------------------------------------------------- */

type SessionConfig struct {
  Genome    string
  UCSC      bool
  Regions   string
  Window    int
  Threads   int
  Format    string
  Normalize bool
  Verbose   int
}

/* -------------------------------------------------------------------------- */

func PrintStderr(config SessionConfig, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

func newLogger(config SessionConfig) *zap.Logger {
  if config.Verbose < 2 {
    return zap.NewNop()
  }
  logger, err := zap.NewDevelopment()
  if err != nil {
    log.Fatal(err)
  }
  return logger
}

func importConfig(config SessionConfig, filename string) Config {
  PrintStderr(config, 1, "Reading config `%s'... ", filename)
  c, err := LoadConfig(filename)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return c
}

func importGenome(config SessionConfig, genomeName string) (Genome, bool) {
  genome := Genome{Name: genomeName}
  switch {
  case config.Genome != "":
    PrintStderr(config, 1, "Reading genome `%s'... ", config.Genome)
    if err := genome.Import(config.Genome); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
  case config.UCSC:
    PrintStderr(config, 1, "Importing genome `%s' from UCSC... ", genomeName)
    if g, err := ImportGenomeFromUCSC(genomeName); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    } else {
      genome = g
    }
  default:
    return genome, false
  }
  PrintStderr(config, 1, "done\n")
  return genome, true
}

func importRegions(config SessionConfig, genomeName, region string) []GenomicRegion {
  if config.Regions == "" {
    r, err := ParseGenomicRegion(genomeName, region)
    if err != nil {
      log.Fatal(err)
    }
    return []GenomicRegion{r}
  }
  PrintStderr(config, 1, "Reading regions `%s'... ", config.Regions)
  regions, err := ImportRegions(config.Regions, genomeName)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return regions
}

/* -------------------------------------------------------------------------- */

func newTracks(config SessionConfig, c Config, assembly *TrackDataAssembly, logger *zap.Logger) ([]*RenderableTrack, []*PlotSurface) {
  tracks   := []*RenderableTrack{}
  surfaces := []*PlotSurface{}
  render   := c.Render
  render.Normalize = render.Normalize || config.Normalize

  for _, d := range c.Tracks {
    kind, err := NewTrackKind(d, assembly)
    if err != nil {
      log.Fatal(err)
    }
    surface := NewPlotSurface(vg.Points(render.Width), vg.Points(render.Height), config.Format)
    track, err := NewRenderableTrack(kind, surface, render, c.Retry, logger)
    if err != nil {
      log.Fatal(err)
    }
    style, err := track.Style().Merge(d)
    if err != nil {
      log.Fatal(err)
    }
    track.SetStyle(style)
    tracks   = append(tracks,   track)
    surfaces = append(surfaces, surface)
  }
  return tracks, surfaces
}

func trackView(config SessionConfig, filenameConfig, region, prefix string) {
  c        := importConfig(config, filenameConfig)
  logger   := newLogger(config)
  defer logger.Sync()

  if len(c.Tracks) == 0 {
    log.Fatal("no tracks configured")
  }
  assembly, err := NewTrackDataAssemblyFromConfig(c, WithLogger(logger))
  if err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 2, "Querying `%s' with %s codec\n", c.Endpoint.URL, assembly.Client().Codec().Name())
  genomeName := c.Tracks[0].Genome
  genome, hasGenome := importGenome(config, genomeName)
  regions := importRegions(config, genomeName, region)
  window, err := NewWindow(config.Window)
  if err != nil {
    log.Fatal(err)
  }
  tracks, surfaces := newTracks(config, c, assembly, logger)
  group := NewTrackGroup(config.Threads, tracks...)

  p := progress.New(len(regions), 100)
  p.Label = "Rendering"
  for i, r := range regions {
    if hasGenome {
      if r, err = genome.ClipRegion(r); err != nil {
        log.Fatal(err)
      }
    }
    if len(regions) == 1 {
      PrintStderr(config, 1, "Loading region %v... ", r)
    }
    if err := group.SetRegion(context.Background(), r, window); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Printf("region %v: %v", r, err)
    } else if len(regions) == 1 {
      PrintStderr(config, 1, "done\n")
    }
    if _, err := group.ApplyPendingUpdates(); err != nil {
      log.Fatal(err)
    }
    for j, t := range tracks {
      if state, _ := t.State(); state != TrackReady {
        continue
      }
      filename := fmt.Sprintf("%s.%s.%d.%s", prefix, t.Kind().GetName(), i+1, surfaces[j].Format)
      if err := surfaces[j].Save(filename); err != nil {
        log.Fatal(err)
      }
      PrintStderr(config, 2, "Wrote `%s' (scale %.2f)\n", filename, t.ComputeAutoScale(config.Normalize))
    }
    if len(regions) > 1 && config.Verbose > 0 {
      p.PrintStderr(i+1)
    }
  }
  PrintStderr(config, 2, "Classified %d samples\n", assembly.Cache().Len())
}

/* -------------------------------------------------------------------------- */

func main() {

  config  := SessionConfig{}

  options := getopt.New()

  optGenome    := options. StringLong("genome",    'g', "", "file with chromosome sizes used to clip regions")
  optUCSC      := options.   BoolLong("ucsc",       0 ,     "import chromosome sizes from the UCSC genome database")
  optRegions   := options. StringLong("regions",   'r', "", "bed file with regions to render, replaces <REGION>")
  optWindow    := options. StringLong("window",    'w', "100", "bin width in base pairs")
  optThreads   := options.    IntLong("threads",   't',  1, "number of threads")
  optFormat    := options. StringLong("format",    'f', "png", "output format [png, svg, pdf]")
  optNormalize := options.   BoolLong("normalize", 'n',     "normalize signal to reads per million")
  optVerbose   := options.CounterLong("verbose",   'v',     "verbose level [-v or -vv]")
  optHelp      := options.   BoolLong("help",      'h',     "print help")

  options.SetParameters("<CONFIG.yml> <REGION> <OUTPUT-PREFIX>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 3 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Genome    = *optGenome
  config.UCSC      = *optUCSC
  config.Regions   = *optRegions
  config.Threads   = *optThreads
  config.Format    = *optFormat
  config.Normalize = *optNormalize
  config.Verbose   = *optVerbose

  if t, err := strconv.ParseInt(*optWindow, 10, 64); err != nil {
    log.Fatal(err)
  } else {
    config.Window = int(t)
  }
  trackView(config, options.Args()[0], options.Args()[1], options.Args()[2])
}
