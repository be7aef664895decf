package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

func TestFilterString(t *testing.T) {
	assert.Equal(t, "Aeroki files (*.aero);;All files (*)", filterString(aerogui.SourceFilters))
	assert.Equal(t, "Mixed (*.a *.b)", filterString([]aerogui.FileFilter{{Desc: "Mixed", Extensions: []string{"a", "b"}}}))
	assert.Empty(t, filterString(nil))
}

func TestStartPath(t *testing.T) {
	assert.Equal(t, "/tmp", startPath(aerogui.FileRequest{StartDir: "/tmp"}))
	assert.Equal(t, "/tmp/a.aero", startPath(aerogui.FileRequest{StartDir: "/tmp", StartFile: "a.aero"}))
}
