// Package client implements the transports used by the gophwallet CLI to
// reach the server.
//
// Two implementations satisfy Client: HTTPClient talks to the REST API under
// /api/v1/user and GRPCClient talks to the gophwallet.UserService gRPC
// endpoint. Both keep the access token returned by Signup or Signin and
// attach it to subsequent calls. Transport failures are reported as
// ErrUnavailable; server rejections are returned as *APIError, which unwraps
// to one of the package sentinels.
package client
