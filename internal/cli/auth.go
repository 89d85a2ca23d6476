package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/survey"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for a username and a password entered twice and creates
// the account. The password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	identity, err := getSimpleText(a.scanner, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if identity == "" || len(password) == 0 {
		return fmt.Errorf("please enter both username and password")
	}
	if !bytes.Equal(password, confirm) {
		return errPasswordMismatch
	}

	if err := a.accounts.Register(ctx, identity, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("username %q already exists", identity)
		}
		return err
	}

	fmt.Fprintln(a.out, "Registration successful! You can now log in with your credentials.")
	return nil
}

// Login authenticates the user and opens a survey session positioned after
// the last answered question. Unknown users and wrong passwords get the same
// message.
func (a *App) Login(ctx context.Context) error {
	identity, err := getSimpleText(a.scanner, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.accounts.Authenticate(ctx, identity, password); err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorWrongPassword) {
			a.logger.Info(ctx, "login failed", "identity", identity, "reason", err)
			return fmt.Errorf("invalid username or password")
		}
		return err
	}

	a.questions = a.catalog.Load(ctx)
	records, err := a.ledger.Load(ctx, identity)
	if err != nil {
		return err
	}

	a.session = survey.NewSession(identity, len(a.questions), len(records))
	a.logger.Info(ctx, "login successful", "identity", identity, "session", a.session.ID)

	fmt.Fprintf(a.out, "Welcome, %s! %d of %d questions answered.\n", identity, len(records), len(a.questions))
	return nil
}

// Logout drops the session.
func (a *App) Logout(ctx context.Context) error {
	if a.session != nil {
		a.logger.Info(ctx, "logout", "identity", a.session.Identity, "session", a.session.ID)
	}
	a.session = nil
	a.questions = nil
	return nil
}
