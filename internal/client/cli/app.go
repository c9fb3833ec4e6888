package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/gophwallet/internal/client/client"
	"github.com/dmitrijs2005/gophwallet/internal/client/config"
)

type App struct {
	config   *config.Config
	client   client.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp builds the transport selected by c.Transport.
func NewApp(c *config.Config) (*App, error) {
	var (
		cl  client.Client
		err error
	)
	switch c.Transport {
	case config.TransportGRPC:
		cl, err = client.NewGRPCClient(c.GRPCAddr)
		if err != nil {
			return nil, err
		}
	default:
		cl = client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	}
	return newApp(c, cl, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.client.Close(); err != nil {
			log.Printf("close client: %v", err)
		}
	}()

	log.Println("Welcome to gophwallet CLI (type 'help' for commands)")

	pctx, cancel := a.withTimeout(ctx)
	if err := a.client.Ping(pctx); err != nil {
		log.Printf("server is not reachable yet: %v", err)
	}
	cancel()

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.client.Authenticated()
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// report prints err in user terms and returns it unchanged.
func (a *App) report(action string, err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "%s failed: server unavailable\n", action)
	case errors.Is(err, client.ErrUnauthorized) && !a.isLoggedIn():
		fmt.Fprintf(a.out, "%s failed: please sign in first\n", action)
	default:
		fmt.Fprintf(a.out, "%s failed: %v\n", action, err)
	}
	return err
}
