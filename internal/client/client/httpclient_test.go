package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pb "github.com/dmitrijs2005/gophwallet/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestAPI(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var auths []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /api/v1/user/signup", func(w http.ResponseWriter, r *http.Request) {
		var req pb.SignupRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username == "taken@x.com" {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "user already exists"})
			return
		}
		writeJSON(w, http.StatusCreated, pb.SignupResponse{Message: "User created successfully", Token: "tok-signup"})
	})
	mux.HandleFunc("POST /api/v1/user/signin", func(w http.ResponseWriter, r *http.Request) {
		var req pb.SigninRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, pb.SigninResponse{Token: "tok-signin"})
	})
	mux.HandleFunc("GET /api/v1/user/me", func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing token"})
			return
		}
		writeJSON(w, http.StatusOK, pb.User{ID: "u1", Username: "a@b.com", FirstName: "Ann", LastName: "Lee"})
	})
	mux.HandleFunc("PUT /api/v1/user/{$}", func(w http.ResponseWriter, r *http.Request) {
		var req pb.UpdateProfileRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.FirstName != nil && *req.FirstName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "firstName must not be empty"})
			return
		}
		writeJSON(w, http.StatusOK, pb.UpdateProfileResponse{Message: "Details updated successfully"})
	})
	mux.HandleFunc("GET /api/v1/user/bulk", func(w http.ResponseWriter, r *http.Request) {
		users := []pb.User{{ID: "u1", FirstName: "Ann"}, {ID: "u2", FirstName: "Bob"}}
		if f := r.URL.Query().Get("filter"); f != "" {
			users = users[:1]
		}
		writeJSON(w, http.StatusOK, pb.ListUsersResponse{Users: users})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &auths
}

func TestHTTPClient_SigninThenMe(t *testing.T) {
	srv, auths := newTestAPI(t)
	c := NewHTTPClient(srv.URL+"/", time.Second)
	defer c.Close()

	require.NoError(t, c.Signin(context.Background(), "a@b.com", "pw"))
	assert.True(t, c.Authenticated())

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, []string{"Bearer tok-signin"}, *auths)
}

func TestHTTPClient_SignupStoresToken(t *testing.T) {
	srv, _ := newTestAPI(t)
	c := NewHTTPClient(srv.URL, time.Second)

	require.NoError(t, c.Signup(context.Background(), &pb.SignupRequest{Username: "a@b.com", Password: "pw"}))
	assert.Equal(t, "tok-signup", c.token())

	c.Logout()
	assert.False(t, c.Authenticated())
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	srv, _ := newTestAPI(t)
	c := NewHTTPClient(srv.URL, time.Second)
	ctx := context.Background()

	err := c.Signup(ctx, &pb.SignupRequest{Username: "taken@x.com"})
	require.ErrorIs(t, err, ErrConflict)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "user already exists", apiErr.Message)

	require.ErrorIs(t, c.Signin(ctx, "a@b.com", "nope"), ErrUnauthorized)
	assert.False(t, c.Authenticated())

	_, err = c.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	empty := ""
	require.ErrorIs(t, c.UpdateProfile(ctx, &pb.UpdateProfileRequest{FirstName: &empty}), ErrBadRequest)
}

func TestHTTPClient_UpdateAndList(t *testing.T) {
	srv, _ := newTestAPI(t)
	c := NewHTTPClient(srv.URL, time.Second)
	ctx := context.Background()

	name := "Zed"
	require.NoError(t, c.UpdateProfile(ctx, &pb.UpdateProfileRequest{FirstName: &name}))

	all, err := c.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := c.ListUsers(ctx, "An")
	require.NoError(t, err)
	assert.Len(t, some, 1)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv, _ := newTestAPI(t)
	c := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, c.Ping(context.Background()))

	srv.Close()
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, ErrServer, kindForStatus(http.StatusInternalServerError))
	assert.Equal(t, ErrUnavailable, kindForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, ErrNotFound, kindForStatus(http.StatusNotFound))
}
