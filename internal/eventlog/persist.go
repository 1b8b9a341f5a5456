package eventlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tunza-app/tunza/internal/config"
)

// FilePersister stores the journal as a single JSON document, rewritten in
// full on every mutation. Writes go through a temp file and rename so a
// crash mid-write cannot corrupt the previous journal.
type FilePersister struct {
	Path string
}

// NewFilePersister returns a persister rooted at dir using the standard
// journal file name, creating dir if needed.
func NewFilePersister(dir string) (*FilePersister, error) {
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return &FilePersister{Path: filepath.Join(dir, config.EventLogFileName)}, nil
}

// Load reads the journal. A missing file is an empty journal, not an error.
func (p *FilePersister) Load() ([]Event, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", config.ErrJournalRead, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrJournalDecode, err)
	}
	return events, nil
}

// Save rewrites the full journal atomically.
func (p *FilePersister) Save(events []Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrJournalWrite, err)
	}

	tmp := p.Path + config.EventLogTempSuffix
	if err := os.WriteFile(tmp, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrJournalWrite, err)
	}
	if err := os.Rename(tmp, p.Path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrJournalWrite, err)
	}
	return nil
}
