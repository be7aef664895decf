// aerokiide-qt - editor and runner for Aeroki programs, Qt front-end
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mappu/miqt/qt"
	"github.com/mappu/miqt/qt/mainthread"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui/native"
)

const appTitle = "Aeroki IDE"

// ide holds the window state. Widgets are only touched on the Qt main thread.
type ide struct {
	start  *aerogui.Startup
	logger *aeroki.Logger

	app        *qt.QApplication
	window     *qt.QMainWindow
	editor     *qt.QPlainTextEdit
	output     *plainOutput
	stopBtn    *qt.QPushButton
	recentMenu *qt.QMenu

	chooser  aerogui.FileChooser
	notifier aerogui.Notifier
	dialogs  qtChooser

	doc     *aeroki.Document
	recent  *aerogui.RecentFiles
	watcher *aerogui.FileWatcher
	console *aerogui.Console
	runner  *aerogui.ProgramRunner

	loading bool
	prompt  *qt.QInputDialog
}

func main() {
	start, err := aerogui.Start("aerokiide-qt", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	prepareQtEnv()

	w := &ide{
		start:  start,
		logger: start.Logger,
		app:    qt.NewQApplication(os.Args),
		doc:    start.InitialDocument(),
		recent: aerogui.LoadRecentFiles(start.Settings, start.Config.GetRecentLimit()),
	}
	w.applyTheme()
	w.build()
	w.window.Show()
	qt.QApplication_Exec()
	w.shutdown()
}

func (w *ide) applyTheme() {
	switch w.start.Config.GetTheme() {
	case aerogui.ThemeDark:
		w.app.SetStyleSheet(`
			QWidget { background-color: #353535; color: #ffffff; }
			QPlainTextEdit { background-color: #252525; }
			QPushButton { background-color: #454545; border: 1px solid #555555; padding: 5px 15px; border-radius: 3px; }
			QPushButton:hover { background-color: #505050; }
			QMenuBar::item:selected, QMenu::item:selected { background-color: #505050; }
		`)
	case aerogui.ThemeLight:
		w.app.SetStyleSheet(`
			QWidget { background-color: #f0f0f0; color: #000000; }
			QPlainTextEdit { background-color: #ffffff; }
		`)
	}
}

func (w *ide) build() {
	w.window = qt.NewQMainWindow2()
	width, height := w.start.Config.GetWindowSize()
	w.window.Resize(width, height)

	w.dialogs = qtChooser{parent: w.window.QWidget}
	w.chooser, w.notifier = w.dialogs, w.dialogs
	if w.start.Config.UseNativeDialogs() {
		w.chooser, w.notifier = native.Chooser{}, native.Chooser{}
	}

	w.editor = qt.NewQPlainTextEdit2()
	w.editor.SetStyleSheet(fmt.Sprintf("font-family: %q; font-size: %dpt;",
		w.start.Config.GetPrimaryFont(), w.start.Config.GetFontSize()))
	w.setEditorText(w.doc.Text())
	w.editor.OnTextChanged(func() {
		if w.loading {
			return
		}
		w.doc.SetText(w.editor.ToPlainText())
		w.updateTitle()
	})

	runBtn := qt.NewQPushButton3("▶ Run")
	runBtn.OnClicked(w.run)
	w.stopBtn = qt.NewQPushButton3("■ Stop")
	w.stopBtn.SetEnabled(false)
	w.stopBtn.OnClicked(func() { go w.runner.Stop() })

	buttons := qt.NewQHBoxLayout2()
	buttons.AddStretch()
	buttons.AddWidget(runBtn.QWidget)
	buttons.AddWidget(w.stopBtn.QWidget)
	buttons.AddStretch()

	w.output = newPlainOutput(w.start.Config)
	lowerLayout := qt.NewQVBoxLayout2()
	lowerLayout.SetContentsMargins(0, 4, 0, 0)
	lowerLayout.AddLayout(buttons.QLayout)
	lowerLayout.AddWidget(w.output.edit.QWidget)
	lower := qt.NewQWidget2()
	lower.SetLayout(lowerLayout.QLayout)

	splitter := qt.NewQSplitter3(qt.Vertical)
	splitter.AddWidget(w.editor.QWidget)
	splitter.AddWidget(lower)
	splitter.SetStretchFactor(0, 3)
	splitter.SetStretchFactor(1, 2)
	w.window.SetCentralWidget(splitter.QWidget)

	w.buildMenu()

	w.console = aerogui.NewConsole(aerogui.ConsoleOptions{
		Terminal: w.output,
		GUISync:  aerogui.SyncFunc(mainthread.Start),
		CRLF:     true,
	})
	w.runner = aerogui.NewProgramRunner(aerogui.ProgramRunnerOptions{
		Launcher:  w.start.Launcher,
		Console:   w.console,
		Asker:     aerogui.PromptFunc(w.askInput),
		EchoInput: true,
	})
	w.runner.OnRunStart = func(*aeroki.Session) {
		mainthread.Start(func() { w.stopBtn.SetEnabled(true) })
	}
	w.runner.OnRunEnd = func(aeroki.ExitStatus) {
		mainthread.Start(func() { w.stopBtn.SetEnabled(false) })
	}

	if w.start.Config.WatchFiles() {
		watcher, err := aerogui.NewFileWatcher(w.logger, func(path string) {
			mainthread.Start(func() { w.externalChange(path) })
		})
		if err != nil {
			w.logger.WarnCat(aeroki.CatEditor, "file watching disabled: %v", err)
		} else {
			w.watcher = watcher
			w.watch()
		}
	}

	w.updateTitle()
}

func (w *ide) buildMenu() {
	bar := w.window.MenuBar()

	file := bar.AddMenuWithTitle("&File")
	file.AddAction("&Open...").OnTriggered(w.open)
	w.recentMenu = file.AddMenuWithTitle("Open &Recent")
	file.AddAction("&Save").OnTriggered(w.save)
	file.AddAction("Save &As...").OnTriggered(w.saveAs)
	file.AddSeparator()
	file.AddAction("E&xit").OnTriggered(func() { w.window.Close() })

	run := bar.AddMenuWithTitle("&Run")
	run.AddAction("&Run").OnTriggered(w.run)
	run.AddAction("S&top").OnTriggered(func() { go w.runner.Stop() })

	save := qt.NewQShortcut2(qt.NewQKeySequence2("Ctrl+S"), w.window.QWidget)
	save.OnActivated(w.save)

	w.refreshRecent()
}

func (w *ide) refreshRecent() {
	w.recentMenu.Clear()
	paths := w.recent.List()
	for _, path := range paths {
		w.recentMenu.AddAction(path).OnTriggered(func() { w.openPath(path) })
	}
	if len(paths) == 0 {
		w.recentMenu.AddAction("(none)").SetEnabled(false)
	}
}

func (w *ide) setEditorText(text string) {
	w.loading = true
	w.editor.SetPlainText(text)
	w.loading = false
}

func (w *ide) updateTitle() {
	w.window.SetWindowTitle(appTitle + " - " + w.doc.Title())
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

// askInput shows a modal QInputDialog on the Qt thread and waits for it.
func (w *ide) askInput(ctx context.Context, p aeroki.Prompt) (string, bool) {
	type reply struct {
		text string
		ok   bool
	}
	answers := make(chan reply, 1)
	mainthread.Start(func() {
		d := qt.NewQInputDialog(w.window.QWidget)
		d.SetWindowTitle("Input")
		d.SetLabelText(p.Label())
		w.prompt = d
		ok := d.Exec() == int(qt.QDialog__Accepted)
		w.prompt = nil
		answers <- reply{d.TextValue(), ok}
		d.DeleteLater()
	})

	select {
	case r := <-answers:
		return r.text, r.ok
	case <-ctx.Done():
		mainthread.Start(func() {
			if w.prompt != nil {
				w.prompt.Reject()
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
