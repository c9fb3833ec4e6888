package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	pb "github.com/dmitrijs2005/gophwallet/internal/rpc"
)

var getOptionalText = GetOptionalText

// Me prints the profile of the signed-in user.
func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Me(ctx)
	if err != nil {
		return a.report("Me", err)
	}

	fmt.Fprintf(a.out, "ID:         %s\n", u.ID)
	fmt.Fprintf(a.out, "Username:   %s\n", u.Username)
	fmt.Fprintf(a.out, "First name: %s\n", u.FirstName)
	fmt.Fprintf(a.out, "Last name:  %s\n", u.LastName)
	return nil
}

// Update asks for each mutable field; an empty answer keeps the current
// value.
func (a *App) Update(ctx context.Context) error {
	var req pb.UpdateProfileRequest
	var err error

	if req.FirstName, err = getOptionalText(a.reader, "New first name (empty to keep)", a.out); err != nil {
		return err
	}
	if req.LastName, err = getOptionalText(a.reader, "New last name (empty to keep)", a.out); err != nil {
		return err
	}

	change, err := getSimpleText(a.reader, "Change password? (y/N)", a.out)
	if err != nil {
		return err
	}
	if strings.EqualFold(change, "y") || strings.EqualFold(change, "yes") {
		password, err := getPassword(a.out)
		if err != nil {
			return err
		}
		p := string(password)
		common.WipeByteArray(password)
		req.Password = &p
	}

	if req.FirstName == nil && req.LastName == nil && req.Password == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.UpdateProfile(ctx, &req); err != nil {
		return a.report("Update", err)
	}
	fmt.Fprintln(a.out, "Details updated successfully")
	return nil
}

// Users lists users whose first or last name contains filter.
func (a *App) Users(ctx context.Context, filter string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	users, err := a.client.ListUsers(ctx, filter)
	if err != nil {
		return a.report("Users", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tFIRST NAME\tLAST NAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.FirstName, u.LastName)
	}
	return tw.Flush()
}
