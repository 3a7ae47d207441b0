// Command octofit-probe checks that the fitness API answers every resource
// endpoint with a payload the dashboard can render.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/octofit/dashboard/internal/catalog"
	"github.com/octofit/dashboard/internal/loader"
	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/resource"
	"github.com/octofit/dashboard/pkg/client"
)

func main() {
	baseURL := flag.String("api", envOr("API_BASE_URL", "http://localhost:8000"), "Fitness API base URL")
	token := flag.String("token", os.Getenv("API_TOKEN"), "Bearer token for the fitness API")
	catalogFile := flag.String("catalog", "", "Optional catalog override file")
	timeout := flag.Duration("timeout", 10*time.Second, "Per-request timeout")
	verbose := flag.Bool("v", false, "Log every load event")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	registry := resource.Builtin()
	if *catalogFile != "" {
		cl := catalog.NewLoader()
		if err := cl.LoadFromFile(*catalogFile); err != nil {
			fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
			os.Exit(2)
		}
		var err error
		if registry, err = registry.Apply(cl.Overrides()); err != nil {
			fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
			os.Exit(2)
		}
	}

	c := client.NewClient(*baseURL, *token, client.WithTimeout(*timeout))

	if failed := probe(context.Background(), os.Stdout, c, registry, *verbose); failed > 0 {
		os.Exit(1)
	}
}

// probe checks the API root and every resource endpoint, printing one line
// per check. It returns the number of failed checks.
func probe(ctx context.Context, out io.Writer, c *client.Client, registry *resource.Registry, verbose bool) int {
	failed := 0

	fmt.Fprintf(out, "API %s\n", c.BaseURL())
	if root, err := c.Root(ctx); err != nil {
		fmt.Fprintf(out, "root: %v\n", err)
		failed++
	} else {
		fmt.Fprintf(out, "root: %d endpoints advertised\n", len(root))
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RESOURCE\tENDPOINT\tSTATUS\tSHAPE\tRECORDS\tRESULT")

	for _, p := range registry.All() {
		meta := p.Describe()

		var last loader.Event
		observers := loader.Observers{loader.ObserverFunc(func(_ context.Context, ev loader.Event) {
			last = ev
		})}
		if verbose {
			observers = append(observers, loader.NewLogObserver(slog.Default()))
		}

		l := loader.New(c, loader.WithResource(string(meta.Kind)), loader.WithObserver(observers))
		state, err := l.Load(ctx, meta.Endpoint)
		if err != nil {
			state = models.Failed(err)
		}

		status := "-"
		if last.StatusCode != 0 {
			status = fmt.Sprint(last.StatusCode)
		}
		shape := "-"
		if last.Shape != "" {
			shape = string(last.Shape)
		}

		result := "ok"
		if state.Phase == models.PhaseError {
			result = "FAIL " + state.Message()
			failed++
		} else if last.Detail != "" {
			result = "WARN " + last.Detail
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", meta.Kind, meta.Endpoint, status, shape, state.Len(), result)
	}

	if err := tw.Flush(); err != nil {
		slog.Error("failed to write report", "error", err)
	}

	return failed
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
