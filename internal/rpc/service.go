package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "gophwallet.UserService"

// Full method names, as seen by interceptors.
const (
	MethodSignup         = "/" + serviceName + "/Signup"
	MethodSignin         = "/" + serviceName + "/Signin"
	MethodUpdateProfile  = "/" + serviceName + "/UpdateProfile"
	MethodListUsers      = "/" + serviceName + "/ListUsers"
	MethodGetCurrentUser = "/" + serviceName + "/GetCurrentUser"
	MethodPing           = "/" + serviceName + "/Ping"
)

// UserServiceServer is the server API of gophwallet.UserService.
type UserServiceServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Signin(context.Context, *SigninRequest) (*SigninResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	GetCurrentUser(context.Context, *GetCurrentUserRequest) (*User, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unary adapts a typed method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(UserServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UserServiceDesc describes gophwallet.UserService for grpc.Server.
var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Signup", Handler: unary(MethodSignup, UserServiceServer.Signup)},
		{MethodName: "Signin", Handler: unary(MethodSignin, UserServiceServer.Signin)},
		{MethodName: "UpdateProfile", Handler: unary(MethodUpdateProfile, UserServiceServer.UpdateProfile)},
		{MethodName: "ListUsers", Handler: unary(MethodListUsers, UserServiceServer.ListUsers)},
		{MethodName: "GetCurrentUser", Handler: unary(MethodGetCurrentUser, UserServiceServer.GetCurrentUser)},
		{MethodName: "Ping", Handler: unary(MethodPing, UserServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophwallet/user_service",
}

// UserServiceClient calls gophwallet.UserService over a JSON-coded
// connection.
type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UserServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, MethodSignup, in, opts)
}

func (c *UserServiceClient) Signin(ctx context.Context, in *SigninRequest, opts ...grpc.CallOption) (*SigninResponse, error) {
	return invoke[SigninResponse](ctx, c.cc, MethodSignin, in, opts)
}

func (c *UserServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error) {
	return invoke[UpdateProfileResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *UserServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, MethodListUsers, in, opts)
}

func (c *UserServiceClient) GetCurrentUser(ctx context.Context, in *GetCurrentUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodGetCurrentUser, in, opts)
}

func (c *UserServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
