package main

import (
	"os"
	"path/filepath"
	"runtime"
)

// qtEnvDefaults are applied before QApplication is created unless the user
// already set them.
var qtEnvDefaults = map[string]string{
	"QT_AUTO_SCREEN_SCALE_FACTOR": "0",
	"QT_ENABLE_HIGHDPI_SCALING":   "0",
}

func prepareQtEnv() {
	for k, v := range qtEnvDefaults {
		if os.Getenv(k) == "" {
			os.Setenv(k, v)
		}
	}
	if os.Getenv("QT_PLUGIN_PATH") != "" {
		return
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		for _, prefix := range []string{"/opt/homebrew/opt/qt@5", "/usr/local/opt/qt@5", "/opt/homebrew/opt/qt", "/usr/local/opt/qt"} {
			candidates = append(candidates, filepath.Join(prefix, "plugins"))
		}
	case "linux":
		candidates = []string{
			"/usr/lib/x86_64-linux-gnu/qt5/plugins",
			"/usr/lib/qt5/plugins",
			"/usr/lib64/qt5/plugins",
		}
	}
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			os.Setenv("QT_PLUGIN_PATH", dir)
			return
		}
	}
}
