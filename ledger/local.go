package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

func NewLocal(path string) (Base, error) {
	var err error
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	l := LocalStore{path: path, log: zap.L().With(zap.String("facility", "local-ledger"))}
	l.log.Info("Initialized local ledger store", zap.String("path", path))
	return l, nil
}

// LocalStore keeps the ledger in a single JSON document on disk. A missing
// file reads as an empty ledger, so first startup needs no provisioning.
type LocalStore struct {
	log  *zap.Logger
	path string
}

func (l LocalStore) Load() (map[string]Entry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return map[string]Entry{}, nil
	} else if err != nil {
		return nil, err
	}

	entries := map[string]Entry{}
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save writes through a temporary file and renames, so a crash mid-write
// never truncates the previous document.
func (l LocalStore) Save(entries map[string]Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".ledger-*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), l.path)
}
