package ledger

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
)

// ValidateIdentity rejects identities that cannot safely name a file.
func ValidateIdentity(identity string) error {
	switch {
	case identity == "", identity == ".", identity == "..":
		return fmt.Errorf("%w: %q", common.ErrorInvalidIdentity, identity)
	case strings.ContainsAny(identity, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", common.ErrorInvalidIdentity, identity)
	}
	return nil
}
