package main

// The code to start and stop the footprint HTTP server.

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/ColinToft/GeometricRoute/internal/util/config"
	"github.com/ColinToft/GeometricRoute/pkg/footprint"
	"github.com/ColinToft/GeometricRoute/pkg/footprint/endpoints"
	"github.com/ColinToft/GeometricRoute/pkg/footprint/transport"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

const defaultPort = "8081"

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
		Use:          "footprint",
		Short:        "Serve summaries and extrusions of drawn building footprints",
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
	return root
}

func serve(c config.Config) error {
	logger := c.Logger(os.Stderr)
	footprint.SetLogger(log.With(logger, "component", "footprint"))
	routegen.SetLogger(log.With(logger, "component", "routegen"))
	routegen.Strict = c.Strict

	var service footprint.Service
	service = footprint.NewService()
	service = footprint.NewLoggingService(log.With(logger, "component", "footprint"), service)

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
		level.Info(logger).Log("transport", "HTTP", "addr", httpAddr)
		err := httpServer.Serve(httpListener)
		if err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("transport", "HTTP", "during", "Serve", "err", err)
		}
	}()

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
