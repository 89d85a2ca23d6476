package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Show(ctx context.Context) error
	Answer(ctx context.Context) error
	Navigate(ctx context.Context, cmd string, args []string) error
	Summary(ctx context.Context) error
	Export(ctx context.Context) error

	Users(ctx context.Context) error
	Delete(ctx context.Context, identity string) error
	ExportAll(ctx context.Context) error
	Stats(ctx context.Context) error
}

const (
	guestHelp      = "Available commands: register, login, exit"
	respondentHelp = "Available commands: show, answer, next, prev, first, last, goto <n>, summary, export, logout, exit"
	adminHelp      = "Admin commands: users, delete <identity>, exportall, stats"
)

// runREPL starts a simple read–eval–print loop for PrefKeeper.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               show available commands
//	  - register           create an account
//	  - login              authenticate and resume the survey
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - show               show the current question
//	  - answer | a         answer the current question
//	  - next | prev | first | last | goto <n>
//	  - summary            progress summary
//	  - export             write own results to a file
//	  - logout
//
//	Logged in as admin, additionally:
//	  - users              list accounts
//	  - delete <identity>  delete an account and its answers
//	  - exportall          write every identity's results to one file
//	  - stats              collection statistics
//
// A handler error is printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(respondentHelp)
				printlnFn(adminHelp)
			case a.isLoggedIn():
				printlnFn(respondentHelp)
			default:
				printlnFn(guestHelp)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			err = a.Register(ctx)

		case "login":
			if a.isLoggedIn() {
				printlnFn("Already logged in; logout first")
				continue
			}
			err = a.Login(ctx)

		case "logout", "show", "answer", "a", "next", "n", "prev", "p", "first", "last", "goto", "summary", "export":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = dispatchRespondent(ctx, a, cmd, args)

		case "users", "delete", "exportall", "stats":
			if !a.isAdmin() {
				printlnFn("Admin only:", cmd)
				continue
			}
			err = dispatchAdmin(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatchRespondent(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "show":
		return a.Show(ctx)
	case "answer", "a":
		return a.Answer(ctx)
	case "summary":
		return a.Summary(ctx)
	case "export":
		return a.Export(ctx)
	default:
		return a.Navigate(ctx, cmd, args)
	}
}

func dispatchAdmin(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "users":
		return a.Users(ctx)
	case "delete":
		if len(args) != 1 {
			printlnFn("Usage: delete <identity>")
			return nil
		}
		return a.Delete(ctx, args[0])
	case "exportall":
		return a.ExportAll(ctx)
	default:
		return a.Stats(ctx)
	}
}
