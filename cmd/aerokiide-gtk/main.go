// aerokiide-gtk - editor and runner for Aeroki programs, GTK 3 front-end
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui/native"
)

const appTitle = "Aeroki IDE"

// ide holds the window state. Widgets are only touched on the GTK main thread.
type ide struct {
	start  *aerogui.Startup
	logger *aeroki.Logger

	window    *gtk.Window
	editorBuf *gtk.TextBuffer
	output    *textOutput
	stopBtn   *gtk.Button
	recentMnu *gtk.MenuItem

	chooser  aerogui.FileChooser
	notifier aerogui.Notifier
	dialogs  *gtkChooser

	doc     *aeroki.Document
	recent  *aerogui.RecentFiles
	watcher *aerogui.FileWatcher
	console *aerogui.Console
	runner  *aerogui.ProgramRunner

	loading bool
	prompt  *inputDialog
}

func main() {
	start, err := aerogui.Start("aerokiide-gtk", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	gtk.Init(nil)

	w := &ide{
		start:  start,
		logger: start.Logger,
		doc:    start.InitialDocument(),
		recent: aerogui.LoadRecentFiles(start.Settings, start.Config.GetRecentLimit()),
	}
	if err := w.build(); err != nil {
		start.Logger.Fatal("could not create window: %v", err)
		os.Exit(1)
	}
	w.window.ShowAll()
	gtk.Main()
	w.shutdown()
}

func idle(fn func()) {
	glib.IdleAdd(fn)
}

func (w *ide) build() error {
	var err error
	w.window, err = gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return err
	}
	width, height := w.start.Config.GetWindowSize()
	w.window.SetDefaultSize(width, height)
	w.window.Connect("destroy", gtk.MainQuit)

	w.dialogs = &gtkChooser{parent: w.window}
	w.chooser, w.notifier = w.dialogs, w.dialogs
	if w.start.Config.UseNativeDialogs() {
		w.chooser, w.notifier = native.Chooser{}, native.Chooser{}
	}

	root, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return err
	}
	menuBar, err := w.buildMenu()
	if err != nil {
		return err
	}
	root.PackStart(menuBar, false, false, 0)

	paned, err := gtk.PanedNew(gtk.ORIENTATION_VERTICAL)
	if err != nil {
		return err
	}
	paned.SetPosition(height * 3 / 5)
	root.PackStart(paned, true, true, 0)

	// Editor
	editor, err := gtk.TextViewNew()
	if err != nil {
		return err
	}
	editor.SetMonospace(true)
	editor.SetWrapMode(gtk.WRAP_WORD_CHAR)
	w.editorBuf, err = editor.GetBuffer()
	if err != nil {
		return err
	}
	w.setEditorText(w.doc.Text())
	w.editorBuf.Connect("changed", func() {
		if w.loading {
			return
		}
		w.doc.SetText(w.editorText())
		w.updateTitle()
	})
	editorScroll, err := scrolled(editor)
	if err != nil {
		return err
	}
	paned.Pack1(editorScroll, true, false)

	// Run controls and output
	lower, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 4)
	if err != nil {
		return err
	}
	buttons, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 6)
	if err != nil {
		return err
	}
	buttons.SetHAlign(gtk.ALIGN_CENTER)
	runBtn, err := gtk.ButtonNewWithLabel("▶ Run")
	if err != nil {
		return err
	}
	runBtn.Connect("clicked", w.run)
	w.stopBtn, err = gtk.ButtonNewWithLabel("■ Stop")
	if err != nil {
		return err
	}
	w.stopBtn.SetSensitive(false)
	w.stopBtn.Connect("clicked", func() { go w.runner.Stop() })
	buttons.PackStart(runBtn, false, false, 0)
	buttons.PackStart(w.stopBtn, false, false, 0)
	lower.PackStart(buttons, false, false, 4)

	w.output, err = newTextOutput(w.start.Config)
	if err != nil {
		return err
	}
	outputScroll, err := scrolled(w.output.view)
	if err != nil {
		return err
	}
	lower.PackStart(outputScroll, true, true, 0)
	paned.Pack2(lower, true, false)

	w.window.Add(root)

	w.console = aerogui.NewConsole(aerogui.ConsoleOptions{
		Terminal: w.output,
		GUISync:  aerogui.SyncFunc(idle),
	})
	w.runner = aerogui.NewProgramRunner(aerogui.ProgramRunnerOptions{
		Launcher:  w.start.Launcher,
		Console:   w.console,
		Asker:     aerogui.PromptFunc(w.askInput),
		EchoInput: true,
	})
	w.runner.OnRunStart = func(*aeroki.Session) {
		idle(func() { w.stopBtn.SetSensitive(true) })
	}
	w.runner.OnRunEnd = func(aeroki.ExitStatus) {
		idle(func() { w.stopBtn.SetSensitive(false) })
	}

	if w.start.Config.WatchFiles() {
		watcher, err := aerogui.NewFileWatcher(w.logger, func(path string) {
			idle(func() { w.externalChange(path) })
		})
		if err != nil {
			w.logger.WarnCat(aeroki.CatEditor, "file watching disabled: %v", err)
		} else {
			w.watcher = watcher
			w.watch()
		}
	}

	w.updateTitle()
	return nil
}

func scrolled(child gtk.IWidget) (*gtk.ScrolledWindow, error) {
	sw, err := gtk.ScrolledWindowNew(nil, nil)
	if err != nil {
		return nil, err
	}
	sw.SetPolicy(gtk.POLICY_AUTOMATIC, gtk.POLICY_AUTOMATIC)
	sw.Add(child)
	return sw, nil
}

func menuItem(label string, activate func()) (*gtk.MenuItem, error) {
	item, err := gtk.MenuItemNewWithLabel(label)
	if err != nil {
		return nil, err
	}
	if activate != nil {
		item.Connect("activate", activate)
	}
	return item, nil
}

func (w *ide) buildMenu() (*gtk.MenuBar, error) {
	bar, err := gtk.MenuBarNew()
	if err != nil {
		return nil, err
	}
	fileMenu, err := gtk.MenuNew()
	if err != nil {
		return nil, err
	}
	fileItem, err := menuItem("File", nil)
	if err != nil {
		return nil, err
	}
	fileItem.SetSubmenu(fileMenu)
	bar.Append(fileItem)

	open, err := menuItem("Open", w.open)
	if err != nil {
		return nil, err
	}
	w.recentMnu, err = menuItem("Open Recent", nil)
	if err != nil {
		return nil, err
	}
	save, err := menuItem("Save", w.save)
	if err != nil {
		return nil, err
	}
	saveAs, err := menuItem("Save As", w.saveAs)
	if err != nil {
		return nil, err
	}
	sep, err := gtk.SeparatorMenuItemNew()
	if err != nil {
		return nil, err
	}
	exit, err := menuItem("Exit", func() { w.window.Destroy() })
	if err != nil {
		return nil, err
	}
	for _, item := range []gtk.IMenuItem{open, w.recentMnu, save, saveAs, sep, exit} {
		fileMenu.Append(item)
	}
	w.refreshRecent()

	runMenu, err := gtk.MenuNew()
	if err != nil {
		return nil, err
	}
	runItem, err := menuItem("Run", nil)
	if err != nil {
		return nil, err
	}
	runItem.SetSubmenu(runMenu)
	bar.Append(runItem)
	start, err := menuItem("Run", w.run)
	if err != nil {
		return nil, err
	}
	stop, err := menuItem("Stop", func() { go w.runner.Stop() })
	if err != nil {
		return nil, err
	}
	runMenu.Append(start)
	runMenu.Append(stop)
	return bar, nil
}

func (w *ide) refreshRecent() {
	menu, err := gtk.MenuNew()
	if err != nil {
		return
	}
	paths := w.recent.List()
	for _, path := range paths {
		item, err := menuItem(path, func() { w.openPath(path) })
		if err == nil {
			menu.Append(item)
		}
	}
	if len(paths) == 0 {
		if item, err := menuItem("(none)", nil); err == nil {
			item.SetSensitive(false)
			menu.Append(item)
		}
	}
	menu.ShowAll()
	w.recentMnu.SetSubmenu(menu)
}

func (w *ide) editorText() string {
	start, end := w.editorBuf.GetBounds()
	text, err := w.editorBuf.GetText(start, end, true)
	if err != nil {
		w.logger.WarnCat(aeroki.CatGUI, "read editor: %v", err)
	}
	return text
}

func (w *ide) setEditorText(text string) {
	w.loading = true
	w.editorBuf.SetText(text)
	w.loading = false
}

func (w *ide) updateTitle() {
	w.window.SetTitle(appTitle + " - " + w.doc.Title())
}

func (w *ide) showError(err error) {
	w.logger.ErrorCat(aeroki.CatEditor, "%v", err)
	w.notifier.ShowError("Error", err.Error())
}

func (w *ide) open() {
	path, err := w.chooser.OpenFile(aerogui.OpenSourceRequest(w.doc))
	if err != nil {
		if !aerogui.IsCancelled(err) {
			w.showError(err)
		}
		return
	}
	w.openPath(path)
}

func (w *ide) openPath(path string) {
	if err := w.doc.Open(path); err != nil {
		w.recent.Remove(path)
		w.refreshRecent()
		w.showError(err)
		return
	}
	w.setEditorText(w.doc.Text())
	w.recent.Add(w.doc.Path())
	w.refreshRecent()
	w.updateTitle()
	w.watch()
}

func (w *ide) save() {
	if w.doc.Path() == "" {
		w.saveAs()
		return
	}
	w.writeTo("")
}

func (w *ide) saveAs() {
	path, err := w.chooser.SaveFile(aerogui.SaveSourceRequest(w.doc))
	if err != nil {
		if !aerogui.IsCancelled(err) {
			w.showError(err)
		}
		return
	}
	w.writeTo(path)
}

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
	w.refreshRecent()
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
	if w.doc.Dirty() && !w.dialogs.Confirm("File changed",
		fmt.Sprintf("%s was modified outside the editor.\nReload and discard your changes?", filepath.Base(path))) {
		return
	}
	if err := w.doc.Reload(); err != nil {
		w.showError(err)
		return
	}
	w.setEditorText(w.doc.Text())
	w.updateTitle()
}

func (w *ide) run() {
	go func() {
		if _, err := w.runner.Run(context.Background(), w.doc); err != nil {
			w.logger.DebugCat(aeroki.CatGUI, "run failed: %v", err)
		}
	}()
}

// askInput runs the input dialog on the GTK thread and waits for it.
func (w *ide) askInput(ctx context.Context, p aeroki.Prompt) (string, bool) {
	type reply struct {
		text string
		ok   bool
	}
	answers := make(chan reply, 1)
	idle(func() {
		d, err := newInputDialog(w.window, p.Label())
		if err != nil {
			w.logger.ErrorCat(aeroki.CatGUI, "input dialog: %v", err)
			answers <- reply{}
			return
		}
		w.prompt = d
		text, ok := d.run()
		w.prompt = nil
		answers <- reply{text, ok}
	})

	select {
	case r := <-answers:
		return r.text, r.ok
	case <-ctx.Done():
		idle(func() {
			if w.prompt != nil {
				w.prompt.cancel()
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

	w.recent.Store(w.start.Settings)
	w.start.SaveSettings()
}
