package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/filex"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

const fileSuffix = "_data.json"

// JSONRepository keeps <dir>/<identity>_data.json, an indented JSON array.
type JSONRepository struct {
	dir string
}

func NewJSONRepository(dir string) *JSONRepository {
	return &JSONRepository{dir: dir}
}

// Path returns the ledger file of identity.
func (r *JSONRepository) Path(identity string) (string, error) {
	if err := ValidateIdentity(identity); err != nil {
		return "", err
	}
	return filepath.Join(r.dir, identity+fileSuffix), nil
}

func (r *JSONRepository) Load(ctx context.Context, identity string) ([]models.AnswerRecord, error) {
	path, err := r.Path(identity)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.AnswerRecord{}, nil
		}
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}

	records := []models.AnswerRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrorMalformedLedger, path, err)
	}

	return records, nil
}

func (r *JSONRepository) Save(ctx context.Context, identity string, records []models.AnswerRecord) error {
	path, err := r.Path(identity)
	if err != nil {
		return err
	}

	if records == nil {
		records = []models.AnswerRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if err := filex.WriteBytesAtomic(path, buf.Bytes(), 0o640); err != nil {
		return fmt.Errorf("write ledger %s: %w", path, err)
	}
	return nil
}

func (r *JSONRepository) Delete(ctx context.Context, identity string) (bool, error) {
	path, err := r.Path(identity)
	if err != nil {
		return false, err
	}

	removed, err := filex.RemoveIfExists(path)
	if err != nil {
		return false, fmt.Errorf("remove ledger %s: %w", path, err)
	}
	return removed, nil
}
