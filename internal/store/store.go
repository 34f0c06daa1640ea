package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pavelanni/tutor/internal/model"
)

// ErrDocumentCorrupt is returned when a backing file exists but is not a valid document.
var ErrDocumentCorrupt = errors.New("document corrupt")

// BackupSuffix is appended to a document path for the copy made at load time.
const BackupSuffix = ".old"

// Store holds the sheets and group documents of one session.
type Store struct {
	sheetsPath string
	groupPath  string

	sheets *model.SheetsDocument
	group  *model.GroupDocument
	names  []string

	sheetsCreated bool
	groupCreated  bool

	digests map[string]string
}

// Load opens both documents. Missing files are created empty and persisted;
// existing files are copied to <path>.old before parsing.
func Load(sheetsPath, groupPath string) (*Store, error) {
	s := &Store{
		sheetsPath: sheetsPath,
		groupPath:  groupPath,
		digests:    make(map[string]string),
	}

	var err error
	if s.sheetsCreated, err = prepare(sheetsPath, &model.SheetsDocument{}); err != nil {
		return nil, err
	}
	if s.groupCreated, err = prepare(groupPath, &model.GroupDocument{}); err != nil {
		return nil, err
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open parses both documents without creating or backing up any file.
func Open(sheetsPath, groupPath string) (*Store, error) {
	s := &Store{
		sheetsPath: sheetsPath,
		groupPath:  groupPath,
		digests:    make(map[string]string),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// prepare backs up an existing file or initializes a missing one.
func prepare(path string, empty any) (created bool, err error) {
	_, err = os.Stat(path)
	switch {
	case err == nil:
		if err := copyFile(path, path+BackupSuffix); err != nil {
			return false, fmt.Errorf("backup %s: %w", path, err)
		}
		slog.Debug("backup written", "path", path+BackupSuffix)
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		data, err := marshal(empty)
		if err != nil {
			return false, err
		}
		if err := writeFile(path, data); err != nil {
			return false, fmt.Errorf("initialize %s: %w", path, err)
		}
		slog.Info("created new document", "path", path)
		return true, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// Reload discards in-memory state and re-reads both files from disk.
func (s *Store) Reload() error {
	sheets := &model.SheetsDocument{}
	sheetsDigest, err := read(s.sheetsPath, sheets)
	if err != nil {
		return err
	}
	group := &model.GroupDocument{}
	groupDigest, err := read(s.groupPath, group)
	if err != nil {
		return err
	}
	s.sheets = sheets
	s.group = group
	s.digests[s.sheetsPath] = sheetsDigest
	s.digests[s.groupPath] = groupDigest
	s.RefreshNames()
	slog.Info("documents loaded",
		"sheets", s.sheetsPath,
		"group", s.groupPath,
		"num_sheets", len(sheets.Sheets),
		"num_students", len(group.Students),
	)
	return nil
}

func read(path string, v any) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDocumentCorrupt, path, err)
	}
	return digest(data), nil
}

// Save writes both documents back to their paths. Both are marshaled before
// either file is touched.
func (s *Store) Save() error {
	sheetsData, err := marshal(s.sheets)
	if err != nil {
		return fmt.Errorf("marshal sheets: %w", err)
	}
	groupData, err := marshal(s.group)
	if err != nil {
		return fmt.Errorf("marshal group: %w", err)
	}
	if err := writeFile(s.groupPath, groupData); err != nil {
		return fmt.Errorf("write %s: %w", s.groupPath, err)
	}
	s.digests[s.groupPath] = digest(groupData)
	if err := writeFile(s.sheetsPath, sheetsData); err != nil {
		return fmt.Errorf("write %s: %w", s.sheetsPath, err)
	}
	s.digests[s.sheetsPath] = digest(sheetsData)
	slog.Info("documents saved", "sheets", s.sheetsPath, "group", s.groupPath)
	return nil
}

// Changed reports whether the file at path differs from what the store last read or wrote.
func (s *Store) Changed(path string) (bool, error) {
	known, ok := s.digests[path]
	if !ok {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return digest(data) != known, nil
}

// RefreshNames recomputes the name index from the group document.
func (s *Store) RefreshNames() {
	s.names = s.group.Names()
}

// Names returns the sorted name index.
func (s *Store) Names() []string { return s.names }

// Sheets returns the in-memory sheets document.
func (s *Store) Sheets() *model.SheetsDocument { return s.sheets }

// Group returns the in-memory group document.
func (s *Store) Group() *model.GroupDocument { return s.group }

// SheetsPath returns the path of the sheets file.
func (s *Store) SheetsPath() string { return s.sheetsPath }

// GroupPath returns the path of the group file.
func (s *Store) GroupPath() string { return s.groupPath }

// SheetsCreated reports whether Load initialized a new sheets file.
func (s *Store) SheetsCreated() bool { return s.sheetsCreated }

// GroupCreated reports whether Load initialized a new group file.
func (s *Store) GroupCreated() bool { return s.groupCreated }

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// writeFile writes to a temp file next to path and renames it into place.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func digest(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
