package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Storage struct{}

// SaveFile writes content, creating parent directories as needed.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// ReportPath generates a filesystem-friendly report path from a URL, e.g.
// dir/example_com-pricing-2026-01-15.json.
func ReportPath(dir, rawURL, ext string, now time.Time) string {
	day := now.Format("2006-01-02")

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Host == "" {
		safe := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
		safe = strings.NewReplacer("/", "_", ":", "_", "?", "_").Replace(safe)
		return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", safe, day, ext))
	}

	host := strings.NewReplacer(".", "_", ":", "_").Replace(parsedURL.Host)

	// Keep the path so example.com/a/b and example.com/a-b stay distinct.
	path := strings.Trim(parsedURL.Path, "/")
	path = strings.ReplaceAll(path, "/", "-")
	path = strings.ReplaceAll(path, ".", "_")

	base := host
	if path != "" {
		base = fmt.Sprintf("%s-%s", host, path)
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", base, day, ext))
}
