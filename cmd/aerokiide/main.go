// aerokiide - editor and runner for Aeroki programs, Fyne front-end
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui/native"
)

const appTitle = "Aeroki IDE"

// ide holds the window state. Fields are only touched on the Fyne main goroutine.
type ide struct {
	start  *aerogui.Startup
	logger *aeroki.Logger

	app    fyne.App
	window fyne.Window
	editor *widget.Entry
	runBtn *widget.Button
	stop   *widget.Button

	doc     *aeroki.Document
	recent  *aerogui.RecentFiles
	watcher *aerogui.FileWatcher
	output  *outputTerminal
	console *aerogui.Console
	runner  *aerogui.ProgramRunner
	native  native.Chooser

	// loading suppresses dirty tracking while the editor text is replaced.
	loading bool
}

func main() {
	start, err := aerogui.Start("aerokiide", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	fyneApp := app.NewWithID("org.aeroki.ide")
	fyneApp.Settings().SetTheme(newIDETheme(start.Config))

	w := &ide{
		start:  start,
		logger: start.Logger,
		app:    fyneApp,
		doc:    start.InitialDocument(),
		recent: aerogui.LoadRecentFiles(start.Settings, start.Config.GetRecentLimit()),
	}
	w.build()
	w.window.ShowAndRun()
	w.shutdown()
}

func (w *ide) build() {
	w.window = w.app.NewWindow(appTitle)
	width, height := w.start.Config.GetWindowSize()
	w.window.Resize(fyne.NewSize(float32(width), float32(height)))

	w.editor = widget.NewMultiLineEntry()
	w.editor.TextStyle = fyne.TextStyle{Monospace: true}
	w.editor.Wrapping = fyne.TextWrapWord
	w.editor.OnChanged = func(text string) {
		if w.loading {
			return
		}
		w.doc.SetText(text)
		w.updateTitle()
	}
	w.setEditorText(w.doc.Text())

	w.runBtn = widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), w.run)
	w.runBtn.Importance = widget.SuccessImportance
	w.stop = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() { w.runner.Stop() })
	w.stop.Disable()

	w.output = newOutputTerminal(w.logger)
	w.console = aerogui.NewConsole(aerogui.ConsoleOptions{
		Terminal: w.output,
		CRLF:     true,
	})
	w.runner = aerogui.NewProgramRunner(aerogui.ProgramRunnerOptions{
		Launcher:  w.start.Launcher,
		Console:   w.console,
		Asker:     aerogui.PromptFunc(w.askInput),
		EchoInput: true,
	})
	w.runner.OnRunStart = func(*aeroki.Session) {
		fyne.Do(func() { w.stop.Enable() })
	}
	w.runner.OnRunEnd = func(aeroki.ExitStatus) {
		fyne.Do(func() { w.stop.Disable() })
	}

	bg := canvas.NewRectangle(w.start.Config.GetOutputBackground())
	outputArea := newSizedWidget(container.NewStack(bg, w.output.term), fyne.NewSize(200, 180))

	buttons := container.NewHBox(layout.NewSpacer(), w.runBtn, w.stop, layout.NewSpacer())
	split := container.NewVSplit(w.editor, container.NewBorder(buttons, nil, nil, nil, outputArea))
	split.SetOffset(0.65)

	w.window.SetContent(split)
	w.window.SetMainMenu(w.menu())
	w.window.Canvas().AddShortcut(&fyne.ShortcutSave{}, func(fyne.Shortcut) { w.save() })
	w.updateTitle()

	if w.start.Config.WatchFiles() {
		watcher, err := aerogui.NewFileWatcher(w.logger, func(path string) {
			fyne.Do(func() { w.externalChange(path) })
		})
		if err != nil {
			w.logger.WarnCat(aeroki.CatEditor, "file watching disabled: %v", err)
		} else {
			w.watcher = watcher
			w.watch()
		}
	}
}

func (w *ide) menu() *fyne.MainMenu {
	exit := fyne.NewMenuItem("Exit", func() { w.app.Quit() })
	exit.IsQuit = true

	recentItem := fyne.NewMenuItem("Open Recent", nil)
	recentItem.ChildMenu = w.recentMenu()

	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open", w.open),
		recentItem,
		fyne.NewMenuItem("Save", w.save),
		fyne.NewMenuItem("Save As", w.saveAs),
		fyne.NewMenuItemSeparator(),
		exit,
	)
	run := fyne.NewMenu("Run",
		fyne.NewMenuItem("Run", w.run),
		fyne.NewMenuItem("Stop", func() { w.runner.Stop() }),
	)
	return fyne.NewMainMenu(file, run)
}

func (w *ide) recentMenu() *fyne.Menu {
	var items []*fyne.MenuItem
	for _, path := range w.recent.List() {
		items = append(items, fyne.NewMenuItem(path, func() { w.openPath(path) }))
	}
	if len(items) == 0 {
		empty := fyne.NewMenuItem("(none)", nil)
		empty.Disabled = true
		items = append(items, empty)
	}
	return fyne.NewMenu("Open Recent", items...)
}

func (w *ide) refreshMenu() {
	w.window.SetMainMenu(w.menu())
}

func (w *ide) updateTitle() {
	w.window.SetTitle(appTitle + " - " + w.doc.Title())
}

func (w *ide) setEditorText(text string) {
	w.loading = true
	w.editor.SetText(text)
	w.loading = false
}

func (w *ide) showError(err error) {
	w.logger.ErrorCat(aeroki.CatEditor, "%v", err)
	dialog.ShowError(err, w.window)
}

func (w *ide) open() {
	req := aerogui.OpenSourceRequest(w.doc)
	if w.start.Config.UseNativeDialogs() {
		path, err := w.native.OpenFile(req)
		if err != nil {
			if !aerogui.IsCancelled(err) {
				w.showError(err)
			}
			return
		}
		w.openPath(path)
		return
	}

	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			w.showError(err)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		w.openPath(path)
	}, w.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{aeroki.SourceExtension}))
	w.setLocation(d.SetLocation, req.StartDir)
	d.Show()
}

func (w *ide) setLocation(set func(fyne.ListableURI), dir string) {
	if dir == "" {
		return
	}
	if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
		set(lister)
	}
}

func (w *ide) openPath(path string) {
	if err := w.doc.Open(path); err != nil {
		w.recent.Remove(path)
		w.refreshMenu()
		w.showError(err)
		return
	}
	w.setEditorText(w.doc.Text())
	w.recent.Add(w.doc.Path())
	w.refreshMenu()
	w.updateTitle()
	w.watch()
	w.logger.DebugCat(aeroki.CatEditor, "opened %s", w.doc.Path())
}

func (w *ide) save() {
	if w.doc.Path() == "" {
		w.saveAs()
		return
	}
	w.writeTo("")
}

func (w *ide) saveAs() {
	req := aerogui.SaveSourceRequest(w.doc)
	if w.start.Config.UseNativeDialogs() {
		path, err := w.native.SaveFile(req)
		if err != nil {
			if !aerogui.IsCancelled(err) {
				w.showError(err)
			}
			return
		}
		w.writeTo(path)
		return
	}

	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			w.showError(err)
			return
		}
		if wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		w.writeTo(aerogui.ResolveSavePath(path, req.DefaultExtension))
	}, w.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{aeroki.SourceExtension}))
	if req.StartFile != "" {
		d.SetFileName(req.StartFile)
	} else {
		d.SetFileName("untitled" + aeroki.SourceExtension)
	}
	w.setLocation(d.SetLocation, req.StartDir)
	d.Show()
}

// writeTo saves the document; an empty path means its current file.
func (w *ide) writeTo(path string) {
	if w.watcher != nil {
		w.watcher.IgnoreFor(time.Second)
	}
	var err error
	if path == "" {
		err = w.doc.Save()
	} else {
		err = w.doc.SaveAs(path)
	}
	if err != nil {
		w.showError(err)
		return
	}
	w.recent.Add(w.doc.Path())
	w.refreshMenu()
	w.updateTitle()
	w.watch()
}

func (w *ide) watch() {
	if w.watcher == nil {
		return
	}
	if err := w.watcher.Watch(w.doc.Path()); err != nil {
		w.logger.WarnCat(aeroki.CatEditor, "watch %s: %v", w.doc.Path(), err)
	}
}

func (w *ide) externalChange(path string) {
	if path != w.doc.Path() {
		return
	}
	reload := func() {
		if err := w.doc.Reload(); err != nil {
			w.showError(err)
			return
		}
		w.setEditorText(w.doc.Text())
		w.updateTitle()
	}
	if !w.doc.Dirty() {
		reload()
		return
	}
	dialog.ShowConfirm("File changed",
		fmt.Sprintf("%s was modified outside the editor.\nReload and discard your changes?", filepath.Base(path)),
		func(ok bool) {
			if ok {
				reload()
			}
		}, w.window)
}

func (w *ide) run() {
	// Runs on the main goroutine; Launcher.Run may wait for a previous
	// program to die, so hand it to a worker.
	go func() {
		if _, err := w.runner.Run(context.Background(), w.doc); err != nil {
			w.logger.DebugCat(aeroki.CatGUI, "run failed: %v", err)
		}
	}()
}

// askInput shows the input dialog and blocks the relay goroutine until the
// user answers or the program is stopped.
func (w *ide) askInput(ctx context.Context, p aeroki.Prompt) (string, bool) {
	type reply struct {
		text string
		ok   bool
	}
	answers := make(chan reply, 1)
	var form dialog.Dialog

	fyne.Do(func() {
		entry := widget.NewEntry()
		entry.OnSubmitted = func(string) {
			if form != nil {
				form.Hide()
			}
			select {
			case answers <- reply{entry.Text, true}:
			default:
			}
		}
		form = dialog.NewForm("Input", "OK", "Cancel",
			[]*widget.FormItem{widget.NewFormItem(p.Label(), entry)},
			func(ok bool) {
				select {
				case answers <- reply{entry.Text, ok}:
				default:
				}
			}, w.window)
		form.Resize(fyne.NewSize(360, 160))
		form.Show()
		w.window.Canvas().Focus(entry)
	})

	select {
	case r := <-answers:
		return r.text, r.ok
	case <-ctx.Done():
		fyne.Do(func() {
			if form != nil {
				form.Hide()
			}
		})
		return "", false
	}
}

func (w *ide) shutdown() {
	w.runner.Stop()
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.console.Close()
	w.output.Close()

	w.recent.Store(w.start.Settings)
	w.start.SaveSettings()
}
