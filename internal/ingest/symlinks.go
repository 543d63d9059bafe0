package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// cycleGuard tracks directories already visited by device+inode so that a
// symlink cycle cannot send the walk into infinite recursion. The teacher's
// walker never closed this gap (it only skipped symlinks when
// FollowSymlinks was false); this planner follows directory symlinks but
// refuses to re-enter a directory it has already visited.
type cycleGuard struct {
	visited map[string]bool
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{visited: make(map[string]bool)}
}

// enter records dir as visited and reports whether it had already been
// seen (via the device/inode key from sameFileKey, not path string equality,
// so that two different paths resolving to the same directory are still
// caught).
func (g *cycleGuard) enter(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil {
		return false
	}
	key := sameFileKey(info)
	if g.visited[key] {
		return true
	}
	g.visited[key] = true
	return false
}

// sameFileKey derives device+inode identity from a FileInfo so that two
// different paths resolving to the same directory (the hallmark of a
// symlink cycle) compare equal. Falls back to the path-independent
// ModTime+Size+Name tuple on platforms without a Stat_t Sys().
func sameFileKey(info os.FileInfo) string {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return fmt.Sprintf("%d:%d", stat.Dev, stat.Ino)
	}
	return info.Name() + "|" + info.ModTime().String() + "|" + fmt.Sprint(info.Size())
}

// walkDir recursively collects regular files under root, resolving
// directory symlinks but refusing to re-enter a directory already visited
// (by device+inode identity) to guard against symlink cycles.
func walkDir(root string, guard *cycleGuard) ([]string, []Warning) {
	var files []string
	var warnings []Warning

	var walk func(dir string)
	walk = func(dir string) {
		if guard.enter(dir) {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			warnings = append(warnings, Warning{dir, "unreadable directory: " + err.Error()})
			return
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			info, err := entry.Info()
			if err != nil {
				warnings = append(warnings, Warning{path, "stat failed: " + err.Error()})
				continue
			}

			if info.Mode()&fs.ModeSymlink != 0 {
				target, err := os.Stat(path) // follows the link
				if err != nil {
					warnings = append(warnings, Warning{path, "broken symlink: " + err.Error()})
					continue
				}
				if target.IsDir() {
					walk(path)
				} else if target.Mode().IsRegular() {
					files = append(files, path)
				}
				continue
			}

			if info.IsDir() {
				walk(path)
				continue
			}
			if info.Mode().IsRegular() {
				files = append(files, path)
			}
		}
	}

	walk(root)
	return files, warnings
}
