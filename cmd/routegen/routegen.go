package main

// The code to start and stop the route HTTP server, and a generate command
// that prints the route for a polygon file.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ColinToft/GeometricRoute/internal/util/config"
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
	"github.com/ColinToft/GeometricRoute/pkg/routegen/endpoints"
	"github.com/ColinToft/GeometricRoute/pkg/routegen/transport"
)

const (
	defaultPort = "8080"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "routegen",
		Short:        "Serve inspection routes for building footprints",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	config.RegisterFlags(root.Flags(), defaultPort)
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := config.NewViper(cmd.Flags())
		if err != nil {
			return err
		}
		c, err := config.Load(v)
		if err != nil {
			return err
		}
		return serve(c)
	}

	root.AddCommand(newGenerateCmd())
	return root
}

func serve(c config.Config) error {
	logger := c.Logger(os.Stderr)
	routegen.SetLogger(log.With(logger, "component", "routegen"))
	routegen.Strict = c.Strict

	var cache *routegen.Cache
	if c.CacheMaxCost > 0 {
		var err error
		cache, err = routegen.NewCache(c.CacheMaxCost)
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	fieldKeys := []string{"method", "cached", "error"}

	var service routegen.Service
	service = routegen.NewService(cache)
	service = routegen.NewLoggingService(log.With(logger, "component", "routegen"), service)
	service = routegen.NewInstrumentingService(
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "geometricroute",
			Subsystem: "routegen",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "geometricroute",
			Subsystem: "routegen",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: "geometricroute",
			Subsystem: "routegen",
			Name:      "route_loops",
			Help:      "Loops per generated route.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}, nil),
		service,
	)

	var (
		httpAddr    = c.HTTPAddr()
		endpoints   = endpoints.NewEndpointSet(service)
		httpHandler = transport.NewHTTPHandler(endpoints, log.With(logger, "component", "HTTP"))
	)

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Listen", "err", err)
		return err
	}

	httpServer := &http.Server{
		Handler: httpHandler,
	}

	go func() {
		level.Info(logger).Log("transport", "HTTP", "addr", httpAddr, "cache_max_cost", c.CacheMaxCost, "strict", c.Strict)
		err := httpServer.Serve(httpListener)
		if err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("transport", "HTTP", "during", "Serve", "err", err)
		}
	}()

	// Block until an interrupt, then stop the server gracefully.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	level.Info(logger).Log("signal", sig)

	err = httpServer.Shutdown(context.Background())
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Shutdown", "err", err)
	}

	level.Info(logger).Log("transport", "HTTP", "status", "stopped")
	return nil
}

func newGenerateCmd() *cobra.Command {
	var (
		file   string
		params = routegen.DefaultParams()
		nest   string
		degen  string
		space  string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the route for a GeoJSON polygon file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.Nesting.UnmarshalText([]byte(nest)); err != nil {
				return err
			}
			if err := params.Degeneracy.UnmarshalText([]byte(degen)); err != nil {
				return err
			}
			if err := params.Coordinates.UnmarshalText([]byte(space)); err != nil {
				return err
			}

			payload, err := readPolygon(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return generate(cmd.OutOrStdout(), payload, params, pretty)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&file, "file", "f", "-", "GeoJSON file with the footprint polygon, - for stdin.")
	fs.Float64Var(&params.BaseHeight, "base", params.BaseHeight, "Base height of the lowest loop.")
	fs.Float64Var(&params.TopHeight, "top", params.TopHeight, "Top height of the highest loop.")
	fs.IntVar(&params.StepCount, "steps", params.StepCount, "Number of loops.")
	fs.Float64Var(&params.ToleranceWidth, "tolerance", params.ToleranceWidth, "Offset between the footprint and the loops.")
	fs.StringVar(&nest, "nesting", "inward", "Nesting policy, one of [inward, outward, standoff].")
	fs.StringVar(&degen, "degeneracy", "clamp", "Degenerate loop policy, one of [clamp, drop].")
	fs.StringVar(&space, "coordinates", "geographic", "Coordinate space, one of [geographic, planar].")
	fs.BoolVar(&pretty, "pretty", false, "Indent the output.")
	return cmd
}

func readPolygon(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

// generate writes the route, or the reason there is none, for payload.
func generate(w io.Writer, payload []byte, params routegen.Params, pretty bool) error {
	fc, err := footprint.Decode(payload)
	if err != nil {
		return err
	}
	route, err := routegen.Build(fc, params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(route)
}
