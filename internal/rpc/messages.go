package rpc

type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SignupResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest holds the mutable profile fields; nil means unchanged.
type UpdateProfileRequest struct {
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type UpdateProfileResponse struct {
	Message string `json:"message"`
}

type ListUsersRequest struct {
	Filter string `json:"filter"`
}

type User struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type GetCurrentUserRequest struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
