// Package config loads runtime configuration for the gophwallet CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (GOPHWALLET_SERVER_URL, GOPHWALLET_GRPC_ADDR,
//     GOPHWALLET_TRANSPORT, GOPHWALLET_TIMEOUT).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the HTTP API
//	-g string   host:port of the gRPC endpoint
//	-p string   transport: "http" or "grpc"
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "grpc_addr": "127.0.0.1:50051",
//	  "transport": "http",
//	  "request_timeout": "10s"
//	}
package config
