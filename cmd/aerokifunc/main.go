// aerokifunc - writes Aeroki function definition files
package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui/native"
)

const (
	appTitle   = "Aeroki Function Creator"
	nameLabel  = "ชื่อฟังก์ชัน:"
	bodyLabel  = "โค้ดในฟังก์ชัน:"
	saveButton = "บันทึกฟังก์ชัน"
)

type creator struct {
	start  *aerogui.Startup
	logger *aeroki.Logger

	window  fyne.Window
	name    *widget.Entry
	body    *widget.Entry
	saveBtn *widget.Button
	native  native.Chooser
	// lastDir is where the previous save or open happened.
	lastDir string
}

func main() {
	start, err := aerogui.Start("aerokifunc", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	a := app.NewWithID("org.aeroki.func")
	c := &creator{start: start, logger: start.Logger}
	c.build(a)
	if len(start.Options.Files) > 0 {
		c.load(start.Options.Files[0])
	}
	c.window.ShowAndRun()
}

func (c *creator) build(a fyne.App) {
	c.window = a.NewWindow(appTitle)
	c.window.Resize(fyne.NewSize(600, 400))

	c.name = widget.NewEntry()
	c.body = widget.NewMultiLineEntry()
	c.body.TextStyle = fyne.TextStyle{Monospace: true}

	top := container.NewVBox(widget.NewLabel(nameLabel), c.name, widget.NewLabel(bodyLabel))
	c.saveBtn = widget.NewButton(saveButton, c.save)
	c.saveBtn.Importance = widget.HighImportance
	open := widget.NewButton("Open...", c.open)

	c.window.SetContent(container.NewBorder(top, container.NewHBox(layout.NewSpacer(), open, c.saveBtn, layout.NewSpacer()), nil, nil, c.body))
	c.window.Canvas().AddShortcut(&fyne.ShortcutSave{}, func(fyne.Shortcut) { c.save() })
}

func (c *creator) function() aeroki.FunctionFile {
	return aeroki.FunctionFile{Name: c.name.Text, Body: c.body.Text}
}

func (c *creator) showError(err error) {
	c.logger.ErrorCat(aeroki.CatApp, "%v", err)
	dialog.ShowError(err, c.window)
}

func (c *creator) save() {
	f := c.function()
	if err := f.Validate(); err != nil {
		c.showError(err)
		return
	}
	req := aerogui.SaveFunctionRequest(f)
	req.StartDir = c.lastDir

	if c.start.Config.UseNativeDialogs() {
		path, err := c.native.SaveFile(req)
		if err != nil {
			if !aerogui.IsCancelled(err) {
				c.showError(err)
			}
			return
		}
		c.write(f, path)
		return
	}

	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			c.showError(err)
			return
		}
		if wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		c.write(f, aerogui.ResolveSavePath(path, req.DefaultExtension))
	}, c.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{aeroki.FunctionExtension}))
	d.SetFileName(req.StartFile)
	setLocation(d.SetLocation, req.StartDir)
	d.Show()
}

func (c *creator) write(f aeroki.FunctionFile, path string) {
	if err := f.WriteFile(path); err != nil {
		c.showError(err)
		return
	}
	c.lastDir = dirOf(path)
	c.logger.DebugCat(aeroki.CatApp, "saved %s", path)
	dialog.ShowInformation("Saved", f.SavedMessage(), c.window)
}

func (c *creator) open() {
	req := aerogui.FileRequest{Title: "Open Function", StartDir: c.lastDir, Filters: aerogui.FunctionFilters}
	if c.start.Config.UseNativeDialogs() {
		path, err := c.native.OpenFile(req)
		if err != nil {
			if !aerogui.IsCancelled(err) {
				c.showError(err)
			}
			return
		}
		c.load(path)
		return
	}

	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			c.showError(err)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		c.load(path)
	}, c.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{aeroki.FunctionExtension}))
	setLocation(d.SetLocation, req.StartDir)
	d.Show()
}

func (c *creator) load(path string) {
	f, err := aeroki.LoadFunctionFile(path)
	if err != nil {
		c.showError(err)
		return
	}
	c.name.SetText(f.Name)
	c.body.SetText(f.Body)
	c.lastDir = dirOf(path)
}
