// Pyrotheus - Flamegraph & Metrics Aggregation Helpers
// Copyright (C) 2025 Andy Dixon <andy@andydixon.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// __________                      __  .__
// \______   \___.__.______  _____/  |_|  |__   ____  __ __  ______
//  |     ___<   |  |\_  __ \/  _ \   __\  |  \_/ __ \|  |  \/  ___/
//  |    |    \___  | |  | \(  <_> )  | |   Y  \  ___/|  |  /\___ \
//  |____|    / ____| |__|   \____/|__| |___|  /\___  >____//____  >
//            \/                             \/     \/           \/
// Flamegraph & metrics helpers - Andy Dixon <andy@andydixon.com> github.com/andydixon

// Welcome to Pyrotheus!
// Our flame-gazing diagnostic adventure starts here!
//
// This is pyrodiag - the little CLI that:
// 1. Asks Prometheus what's on fire (firing alerts, CPU per instance)
// 2. Asks Pyroscope WHY it's on fire (hottest functions by self-time)
// 3. Staples it all together into one report
//
// Every data source is allowed to fail - a half-empty report beats
// no report when things are already going wrong.
//
// Pro tip: Run with -debug flag for verbose logging:
//   ./pyrodiag -debug
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/andydixon/pyrotheus/internal/report"
	"github.com/andydixon/pyrotheus/query"
)

func main() {
	var (
		promURL   = flag.String("prom", "http://localhost:9090", "Prometheus base URL")
		pyroURL   = flag.String("pyro", "http://localhost:4040", "Pyroscope base URL")
		service   = flag.String("service", "api-gateway", "container name of the service to profile")
		profileID = flag.String("profile", "process_cpu:cpu:nanoseconds:cpu:nanoseconds", "profile type to rank")
		topN      = flag.Int("top", 5, "how many functions to report")
		timeRange = flag.String("range", "1h", "lookback window for the flamegraph")
		all       = flag.Bool("all", false, "rank hot functions for every known service")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()
	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Println("Debug logging enabled")
	}

	query.DebugMode = *debug

	c := query.New()
	ctx := context.Background()
	m := report.NewManager()

	m.Register(report.SectionFunc{Title: "Firing alerts", Fn: func(ctx context.Context) (string, error) {
		alerts := c.Alerts(ctx, *promURL)
		if len(alerts) == 0 {
			return "none", nil
		}
		var b strings.Builder
		for _, a := range alerts {
			labels, _ := a["labels"].(map[string]interface{})
			fmt.Fprintf(&b, "%v (severity %v)\n", labels["alertname"], labels["severity"])
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}})

	m.Register(report.SectionFunc{Title: "CPU by instance", Fn: func(ctx context.Context) (string, error) {
		usage := c.Instant(ctx, *promURL, `rate(process_cpu_seconds_total[5m])`)
		if len(usage) == 0 {
			return "no data", nil
		}
		var b strings.Builder
		for _, svc := range query.Services() {
			if v, ok := usage[svc]; ok {
				fmt.Fprintf(&b, "%-24s %.3f cores\n", svc, v)
			}
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}})

	if *all {
		m.Register(report.SectionFunc{Title: "Hot functions (all services)", Fn: func(ctx context.Context) (string, error) {
			services := query.Services()
			blocks := make([]string, len(services))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(4)
			for i, svc := range services {
				g.Go(func() error {
					top := c.TopFunctions(gctx, *pyroURL, query.AppName(svc), *profileID, *topN)
					blocks[i] = formatTop(svc, top)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return "", err
			}
			return strings.Join(blocks, "\n"), nil
		}})
	} else {
		m.Register(report.SectionFunc{Title: "Hot functions", Fn: func(ctx context.Context) (string, error) {
			jr, ok := c.Render(ctx, *pyroURL, *profileID, query.AppName(*service), *timeRange)
			if !ok {
				return "no data", nil
			}
			return formatTop(*service, query.FlamebearerFrom(jr).Top(*topN)), nil
		}})
	}

	fmt.Print(m.Run(ctx))
}

// formatTop renders one service's ranking as indented lines.
func formatTop(service string, top []query.TopFunction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", service)
	if len(top) == 0 {
		b.WriteString("  no profile data")
		return b.String()
	}
	for _, tf := range top {
		fmt.Fprintf(&b, "  %5.1f%% (%d) %s\n", tf.Pct, tf.Self, tf.Function)
	}
	return strings.TrimRight(b.String(), "\n")
}
