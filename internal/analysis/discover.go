package analysis

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// engineNames are the executable names probed in each search directory,
// covering the common download artifacts across platforms.
var engineNames = []string{
	"stockfish",
	"stockfish.exe",
	"stockfish-windows-x86-64-avx2.exe",
}

// FindEngine returns the path of the first engine executable found in
// the given directories, falling back to a PATH lookup.
func FindEngine(dirs ...string) (string, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range engineNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	if path, err := exec.LookPath("stockfish"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("no UCI engine found in %v or PATH", dirs)
}
