package accounts

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

func sortAccounts(accs []models.Account) {
	slices.SortFunc(accs, func(a, b models.Account) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Identity, b.Identity)
	})
}
