package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/prefkeeper/internal/accounts"
	"github.com/dmitrijs2005/prefkeeper/internal/stats"
)

func (a *App) computeStats(ctx context.Context) (*stats.Stats, error) {
	list, err := a.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Compute(ctx, list, len(a.catalog.Load(ctx)), a.ledger, a.logger), nil
}

// Users lists registered accounts with their progress.
func (a *App) Users(ctx context.Context) error {
	s, err := a.computeStats(ctx)
	if err != nil {
		return err
	}
	if len(s.PerIdentity) == 0 {
		fmt.Fprintln(a.out, "No users registered yet.")
		return nil
	}
	printUsers(a.out, s)
	return nil
}

// Delete removes identity's account and answers. The admin account cannot be
// deleted; deleting an unknown identity is reported as done.
func (a *App) Delete(ctx context.Context, identity string) error {
	if accounts.IsAdmin(identity) {
		return fmt.Errorf("the admin account cannot be deleted")
	}

	in, err := getSimpleText(a.scanner, fmt.Sprintf("Delete user %q and all their answers? (y/N)", identity), a.out)
	if err != nil {
		return err
	}
	if in != "y" && in != "Y" && in != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.accounts.Delete(ctx, identity); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	fmt.Fprintf(a.out, "User '%s' deleted successfully\n", identity)
	return nil
}

// ExportAll writes every identity's results to the aggregate file.
func (a *App) ExportAll(ctx context.Context) error {
	res, err := a.exporter.ExportAll(ctx, a.catalog.Load(ctx))
	if res != nil {
		printExportResult(a.out, "Data exported successfully to", res)
	}
	if err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}
	return nil
}

// Stats prints collection statistics.
func (a *App) Stats(ctx context.Context) error {
	s, err := a.computeStats(ctx)
	if err != nil {
		return err
	}
	printStats(a.out, s)
	return nil
}
