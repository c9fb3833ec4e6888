package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Arguments are filtered with flagx.FilterArgs first so flags meant for
// other loaders do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the HTTP API")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "address and port of the gRPC endpoint")
	fs.StringVar(&cfg.Transport, "p", cfg.Transport, "transport: http or grpc")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-g", "-p", "-t"})); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
