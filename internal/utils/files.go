package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdinName is the path argument that selects standard input.
const StdinName = "-"

// InputTooLargeError indicates an input exceeded the configured byte limit.
type InputTooLargeError struct {
	Source string
	Limit  int64
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("input %s exceeds %d bytes", e.Source, e.Limit)
}

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// ReadInput reads a whole file, or stdin when path is "-". limit <= 0 means no
// limit.
func ReadInput(path string, stdin io.Reader, limit int64) (string, error) {
	if path == StdinName {
		return ReadLimited(StdinName, stdin, limit)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ReadLimited(path, f, limit)
}

// ReadLimited reads all of r, failing with *InputTooLargeError once more than
// limit bytes arrive.
func ReadLimited(source string, r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", source, err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", source, err)
	}
	if int64(len(b)) > limit {
		return "", &InputTooLargeError{Source: source, Limit: limit}
	}
	return string(b), nil
}

// DisplayName is the short label used for an input in reports.
func DisplayName(path string) string {
	if path == StdinName {
		return path
	}
	return filepath.Base(path)
}

// UniquePath returns dir/base+suffix, or dir/base__N+suffix for the first N >= 2
// that does not exist yet.
func UniquePath(dir, base, suffix string) string {
	out := filepath.Join(dir, base+suffix)
	if _, err := os.Stat(out); err != nil {
		return out
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", base, idx, suffix))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}
