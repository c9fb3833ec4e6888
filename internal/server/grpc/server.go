// Package grpc serves gophwallet.UserService over gRPC with a JSON codec.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	pb "github.com/dmitrijs2005/gophwallet/internal/rpc"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

// UserService is the business API behind the gRPC handlers;
// *services.UserService implements it.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.SignupResult, error)
	Signin(ctx context.Context, in services.SigninInput) (string, error)
	UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, filter string) ([]models.UserSummary, error)
}

type GRPCServer struct {
	address string
	users   UserService
	guard   *auth.Guard
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, guard *auth.Guard) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		guard:   guard,
	}
}

// NewServer builds a grpc.Server with the interceptor chain and tracing
// stats handler, and registers s on it.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	srv := grpc.NewServer(opts...)
	srv.RegisterService(&pb.UserServiceDesc, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
