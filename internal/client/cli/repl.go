package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Signin(ctx context.Context) error
	Me(ctx context.Context) error
	Update(ctx context.Context) error
	Users(ctx context.Context, filter string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit" or "quit". Command prompts share reader with the loop, so a
// command may consume the lines that follow it.
//
//	Not logged in:
//	  - help             show available commands
//	  - signup           create an account
//	  - signin           authenticate
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - me               show your profile
//	  - update           change profile fields
//	  - users [filter]   list users
//	  - logout           forget the access token
//
// Errors returned by handlers are ignored; handlers report their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gw %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, update, users [filter], logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "signin", "login":
			_ = a.Signin(ctx)

		case "me":
			_ = a.Me(ctx)

		case "update":
			_ = a.Update(ctx)

		case "users", "l", "list":
			_ = a.Users(ctx, strings.Join(parts[1:], " "))

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
