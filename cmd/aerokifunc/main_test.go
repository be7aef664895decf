package main

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

func newTestCreator(t *testing.T) *creator {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	c := &creator{
		start: &aerogui.Startup{
			Config: aerogui.NewConfigHelper(nil),
		},
		logger: aeroki.NewLogger(false),
	}
	c.logger.SetOutput(&discard{}, &discard{})
	c.build(a)
	return c
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestWriteAndLoad(t *testing.T) {
	c := newTestCreator(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "add")

	c.write(aeroki.FunctionFile{Name: "add", Body: "คืนค่า a + b"}, path)

	data, err := os.ReadFile(path + aeroki.FunctionExtension)
	require.NoError(t, err)
	assert.Equal(t, "ฟังก์ชัน add\nคืนค่า a + b\nจบฟังก์ชัน\n", string(data))
	assert.Equal(t, dir, c.lastDir)

	c.name.SetText("")
	c.body.SetText("")
	c.load(path + aeroki.FunctionExtension)
	assert.Equal(t, "add", c.name.Text)
	assert.Equal(t, "คืนค่า a + b", c.body.Text)
}

func TestFunctionFromFields(t *testing.T) {
	c := newTestCreator(t)
	c.name.SetText("  sum ")
	c.body.SetText("x")
	f := c.function()
	require.NoError(t, f.Validate())
	assert.Equal(t, "sum", f.Name)
}

func TestDirOf(t *testing.T) {
	assert.Empty(t, dirOf(""))
	assert.Equal(t, "/tmp", dirOf("/tmp/x.aerofunc"))
}

func TestCreatorLabels(t *testing.T) {
	c := newTestCreator(t)
	assert.Equal(t, "Aeroki Function Creator", c.window.Title())
	assert.Equal(t, "บันทึกฟังก์ชัน", c.saveBtn.Text)
	assert.Equal(t, "ชื่อฟังก์ชัน:", nameLabel)
	assert.Equal(t, "โค้ดในฟังก์ชัน:", bodyLabel)
}
