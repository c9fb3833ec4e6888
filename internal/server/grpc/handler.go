package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	pb "github.com/dmitrijs2005/gophwallet/internal/rpc"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Signup(ctx context.Context, req *pb.SignupRequest) (*pb.SignupResponse, error) {

	s.logger.Info(ctx, "Signup request")

	res, err := s.users.Signup(ctx, services.SignupInput{
		UserName:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.SignupResponse{Message: "User created successfully", Token: res.Token}, nil
}

func (s *GRPCServer) Signin(ctx context.Context, req *pb.SigninRequest) (*pb.SigninResponse, error) {

	token, err := s.users.Signin(ctx, services.SigninInput{UserName: req.Username, Password: req.Password})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.SigninResponse{Token: token}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *pb.UpdateProfileRequest) (*pb.UpdateProfileResponse, error) {

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	err := s.users.UpdateProfile(ctx, userID, services.ProfileUpdate{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.UpdateProfileResponse{Message: "Details updated successfully"}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, req *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {

	list, err := s.users.ListUsers(ctx, req.Filter)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.ListUsersResponse{Users: make([]pb.User, 0, len(list))}
	for _, u := range list {
		resp.Users = append(resp.Users, pb.User{ID: u.ID, Username: u.UserName, FirstName: u.FirstName, LastName: u.LastName})
	}
	return resp, nil
}

func (s *GRPCServer) GetCurrentUser(ctx context.Context, _ *pb.GetCurrentUserRequest) (*pb.User, error) {

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.User{ID: u.ID, Username: u.UserName, FirstName: u.FirstName, LastName: u.LastName}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

// toStatus maps service errors to gRPC codes. Infrastructure failures are
// logged and reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrDuplicateUser):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrAuthentication):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
