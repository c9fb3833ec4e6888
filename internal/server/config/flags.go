package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-d", "-s", "-t", "-m", "-o", "-l", "-cors"}

// parseFlags overlays command-line flags onto config.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC bind address, empty disables gRPC
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes (0 = no expiry)
//	-m string   RabbitMQ URL
//	-o string   OTLP/HTTP trace endpoint
//	-l string   log level
//	-cors list  comma-separated allowed CORS origins
//
// Arguments are filtered through flagx.FilterArgs first so -c/-config and
// unrelated flags do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.RabbitMQURL, "m", config.RabbitMQURL, "RabbitMQ URL")
	fs.StringVar(&config.OtelEndpoint, "o", config.OtelEndpoint, "OTLP trace endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	cors := fs.String("cors", strings.Join(config.CORSAllowedOrigins, ","), "allowed CORS origins")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["t"] {
		config.AccessTokenValidityDuration = time.Duration(*validity) * time.Minute
	}
	if set["cors"] {
		config.CORSAllowedOrigins = splitList(*cors)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
