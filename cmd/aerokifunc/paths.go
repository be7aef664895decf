package main

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

func dirOf(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Dir(path)
}

func setLocation(set func(fyne.ListableURI), dir string) {
	if dir == "" {
		return
	}
	if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
		set(lister)
	}
}
