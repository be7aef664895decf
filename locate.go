package aeroki

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// CompilerBinaryName returns the executable name for the current platform.
func CompilerBinaryName() string {
	if runtime.GOOS == "windows" {
		return "aeroki.exe"
	}
	return "aeroki"
}

// LocateCompiler finds the aeroki executable. The explicit CompilerPath wins;
// otherwise SearchDirs, the running program's directory, the working
// directory and finally PATH are tried in that order.
func LocateCompiler(cfg *Config) (string, error) {
	name := CompilerBinaryName()
	var tried []string

	if cfg != nil && cfg.CompilerPath != "" {
		path, err := filepath.Abs(cfg.CompilerPath)
		if err == nil && isRegularFile(path) {
			return path, nil
		}
		return "", &CompilerError{Binary: cfg.CompilerPath, Tried: []string{cfg.CompilerPath}, Err: ErrCompilerNotFound}
	}

	var dirs []string
	if cfg != nil {
		dirs = append(dirs, cfg.SearchDirs...)
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dirs = append(dirs, filepath.Dir(exe))
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}

	seen := make(map[string]bool)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil || seen[candidate] {
			continue
		}
		seen[candidate] = true
		tried = append(tried, candidate)
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			return abs, nil
		}
		return path, nil
	} else if !errors.Is(err, exec.ErrNotFound) {
		tried = append(tried, "PATH ("+err.Error()+")")
	} else {
		tried = append(tried, "PATH")
	}

	return "", &CompilerError{Binary: name, Tried: tried, Err: ErrCompilerNotFound}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
