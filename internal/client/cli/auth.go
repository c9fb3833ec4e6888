package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	pb "github.com/dmitrijs2005/gophwallet/internal/rpc"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the account fields, creates the account and keeps the
// returned access token.
func (a *App) Signup(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	req := &pb.SignupRequest{Username: userName, Password: string(password), FirstName: firstName, LastName: lastName}
	if err := a.client.Signup(ctx, req); err != nil {
		return a.report("Signup", err)
	}

	a.userName = userName
	fmt.Fprintln(a.out, "User created successfully")
	return nil
}

// Signin prompts for credentials and authenticates.
func (a *App) Signin(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Signin(ctx, userName, string(password)); err != nil {
		return a.report("Signin", err)
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Signed in")
	return nil
}

// Logout forgets the access token. Tokens are stateless on the server side.
func (a *App) Logout(_ context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
