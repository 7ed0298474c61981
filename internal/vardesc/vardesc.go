// Package vardesc maintains the process-wide table of variable descriptions
// collected from variable_descriptions.txt side files placed alongside model
// packages. Each line is "variable_name||free text description".
package vardesc

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vk/oadframe/internal/ctxlog"
)

// FileName is the fixed side-file name probed in model folders.
const FileName = "variable_descriptions.txt"

var (
	mu           sync.Mutex
	descriptions = make(map[string]string)
	loadedDirs   = make(map[string]struct{})
)

// Describe returns the recorded description for a variable name, or ""
// when none was loaded.
func Describe(name string) string {
	mu.Lock()
	defer mu.Unlock()
	return descriptions[name]
}

// Count returns the number of loaded descriptions.
func Count() int {
	mu.Lock()
	defer mu.Unlock()
	return len(descriptions)
}

// LoadDir loads the side file found directly inside dir, if any. Each
// directory is read at most once per process: it is marked as loaded only
// after its side file was read successfully or confirmed absent, so a
// transient read failure is retried on a later call. A missing side file
// is not an error.
func LoadDir(ctx context.Context, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	mu.Lock()
	if _, done := loadedDirs[abs]; done {
		mu.Unlock()
		return nil
	}
	mu.Unlock()

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			markLoaded(abs)
			return nil
		}
		return fmt.Errorf("cannot probe %s: %w", path, err)
	}

	n, err := loadFile(path)
	if err != nil {
		return err
	}
	markLoaded(abs)

	ctxlog.FromContext(ctx).Debug("Loaded variable descriptions.", "path", path, "count", n)
	return nil
}

func markLoaded(abs string) {
	mu.Lock()
	defer mu.Unlock()
	loadedDirs[abs] = struct{}{}
}

func loadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, desc, found := strings.Cut(line, "||")
		if !found {
			// Malformed lines are skipped, not fatal: one bad line in a
			// third-party plugin must not block model loading.
			continue
		}
		mu.Lock()
		descriptions[strings.TrimSpace(name)] = strings.TrimSpace(desc)
		mu.Unlock()
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return count, nil
}

// Reset clears all loaded descriptions and directory markers. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	descriptions = make(map[string]string)
	loadedDirs = make(map[string]struct{})
}
