package client

import (
	"context"

	pb "github.com/dmitrijs2005/gophwallet/internal/rpc"
)

// Client is the transport-neutral view of the user service.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Signup(ctx context.Context, req *pb.SignupRequest) error
	Signin(ctx context.Context, username, password string) error
	Me(ctx context.Context) (*pb.User, error)
	UpdateProfile(ctx context.Context, req *pb.UpdateProfileRequest) error
	ListUsers(ctx context.Context, filter string) ([]pb.User, error)
	Logout()
	Authenticated() bool
}
