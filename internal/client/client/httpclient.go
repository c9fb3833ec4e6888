package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	pb "github.com/dmitrijs2005/gophwallet/internal/rpc"
)

const userAPIPrefix = "/api/v1/user"

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	c.accessToken = t
	c.mu.Unlock()
}

func (c *HTTPClient) Authenticated() bool { return c.token() != "" }

func (c *HTTPClient) Logout() { c.setToken("") }

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) Signup(ctx context.Context, req *pb.SignupRequest) error {
	var resp pb.SignupResponse
	if err := c.do(ctx, http.MethodPost, userAPIPrefix+"/signup", req, &resp); err != nil {
		return err
	}
	c.setToken(resp.Token)
	return nil
}

func (c *HTTPClient) Signin(ctx context.Context, username, password string) error {
	var resp pb.SigninResponse
	req := &pb.SigninRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, userAPIPrefix+"/signin", req, &resp); err != nil {
		return err
	}
	c.setToken(resp.Token)
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*pb.User, error) {
	var u pb.User
	if err := c.do(ctx, http.MethodGet, userAPIPrefix+"/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req *pb.UpdateProfileRequest) error {
	return c.do(ctx, http.MethodPut, userAPIPrefix+"/", req, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, filter string) ([]pb.User, error) {
	path := userAPIPrefix + "/bulk"
	if filter != "" {
		path += "?" + url.Values{"filter": {filter}}.Encode()
	}
	var resp pb.ListUsersResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// do sends one request and decodes a 2xx JSON body into out when out is
// non-nil. Non-2xx replies become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.token(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var m struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&m)
	return &APIError{Kind: kindForStatus(resp.StatusCode), Message: m.Message}
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrServer
	}
}
