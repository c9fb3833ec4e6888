package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName carries "Bearer <token>" for HTTP and gRPC callers.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
