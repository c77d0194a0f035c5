// SPDX-License-Identifier: AGPL-3.0-or-later

package commits

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a fetch result from the given JSON file.
func Load(path string) (*FetchResult, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("commit data not found: %s (run fetch first)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening commit data: %w", err)
	}
	defer func() { _ = f.Close() }()

	var result FetchResult
	if err := json.NewDecoder(f).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding commit data: %w", err)
	}
	return &result, nil
}

// Write saves a fetch result, creating parent directories as needed. The file
// is fully replaced, never appended.
func Write(path string, result *FetchResult) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
