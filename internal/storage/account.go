package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauer/swop/internal/closeutil"
	"github.com/klauer/swop/pkg/swop/domain"
)

// LoadAccountData reads an account snapshot from filePath. Importing the
// game's own raw export format is out of scope; this reads the engine's own
// AccountData shape, the same shape SaveAccountData writes. Account
// snapshots can be large (every inventory rune and artifact), so this
// streams the decode off an open handle rather than buffering the whole
// file the way ReadJSON does.
func LoadAccountData(filePath string) (domain.AccountData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return domain.AccountData{}, fmt.Errorf("failed to open account file %s: %w", filePath, err)
	}
	defer closeutil.CloseWithLog("storage", file, filePath)

	var data domain.AccountData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return domain.AccountData{}, fmt.Errorf("failed to decode account file %s: %w", filePath, err)
	}
	return data, nil
}

// SaveAccountData writes an account snapshot to filePath, e.g. after a
// caller has merged a fresh inventory export into the engine's own shape.
func SaveAccountData(filePath string, data domain.AccountData) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create account file %s: %w", filePath, err)
	}
	defer closeutil.CloseWithLog("storage", file, filePath)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode account file %s: %w", filePath, err)
	}
	return nil
}
