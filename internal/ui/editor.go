package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/moons03/rm-editor/internal/app"
	"github.com/moons03/rm-editor/internal/engine"
	"github.com/moons03/rm-editor/internal/project/watcher"
	"github.com/moons03/rm-editor/internal/renderer/gutter"
)

// Editor hosts one session on a terminal screen.
type Editor struct {
	screen  tcell.Screen
	session *app.Session
	logger  *app.Logger
	gutter  *gutter.Gutter

	tabWidth int
	top      int // first visible line

	prompt    *prompt
	message   string
	quitArmed bool
	quit      bool
}

// New creates an editor drawing to screen, which must already be
// initialized. The document is synchronized once so the gutter has a line
// index to show.
func New(screen tcell.Screen, session *app.Session, logger *app.Logger) *Editor {
	if logger == nil {
		logger = app.NullLogger
	}
	cfg := session.Config()
	session.Document().SyncToRope()

	return &Editor{
		screen:   screen,
		session:  session,
		logger:   logger.WithComponent("ui"),
		gutter:   gutter.New(gutter.Config{MinWidth: cfg.Editor.GutterMinWidth, Mode: cfg.LineNumberMode()}),
		tabWidth: cfg.Editor.TabWidth,
	}
}

// Run draws and handles events until the user quits or the screen is
// finalized. External file changes are delivered to the loop as interrupt
// events so the document is only touched from this goroutine.
func (e *Editor) Run() error {
	go e.forwardChanges()

	for !e.quit {
		e.Draw()
		ev := e.screen.PollEvent()
		if ev == nil {
			break
		}
		e.HandleEvent(ev)
	}
	return nil
}

// Quit reports whether the user asked to quit.
func (e *Editor) Quit() bool {
	return e.quit
}

// SetMessage sets the status message.
func (e *Editor) SetMessage(msg string) {
	e.message = msg
}

// Message returns the status message.
func (e *Editor) Message() string {
	return e.message
}

func (e *Editor) forwardChanges() {
	for ev := range e.session.ExternalChanges() {
		if err := e.screen.PostEvent(tcell.NewEventInterrupt(ev)); err != nil {
			e.logger.Debug("dropped change notification: %v", err)
		}
	}
}

// HandleEvent applies one terminal event.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventInterrupt:
		if change, ok := ev.Data().(watcher.Event); ok {
			e.message = fmt.Sprintf("%s changed on disk (%s)", e.session.Document().Name(), change.Op)
		}
	case *tcell.EventKey:
		if e.prompt != nil {
			e.handlePromptKey(ev)
			return
		}
		e.handleKey(ev)
	}
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyCtrlQ {
		e.quitArmed = false
	}

	doc := e.session.Document()
	text, cursor := doc.Text(), doc.Cursor()

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		if doc.IsModified() && !e.quitArmed {
			e.quitArmed = true
			e.message = "unsaved changes: press Ctrl-Q again to quit"
			return
		}
		e.quit = true
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlO:
		e.openPrompt("Open", e.session.Open)
	case tcell.KeyCtrlW:
		e.openPrompt("Save as", e.session.SaveAs)

	case tcell.KeyRune:
		e.edit(insertText(text, cursor, string(ev.Rune())))
	case tcell.KeyEnter:
		e.edit(insertText(text, cursor, "\n"))
	case tcell.KeyTab:
		e.edit(insertText(text, cursor, "\t"))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.edit(deleteBackward(text, cursor))
	case tcell.KeyDelete:
		e.edit(deleteForward(text, cursor))

	case tcell.KeyLeft:
		doc.SetCursor(cursor - 1)
	case tcell.KeyRight:
		doc.SetCursor(cursor + 1)
	case tcell.KeyUp:
		doc.SetCursor(moveVertical(text, cursor, -1))
	case tcell.KeyDown:
		doc.SetCursor(moveVertical(text, cursor, 1))
	case tcell.KeyHome:
		doc.SetCursor(lineHome(text, cursor))
	case tcell.KeyEnd:
		doc.SetCursor(lineEnd(text, cursor))
	}
}

func (e *Editor) edit(text string, cursor int) {
	e.session.Edit(text, cursor)
}

func (e *Editor) save() {
	err := e.session.Save()
	switch {
	case err == nil:
		e.message = "saved " + e.session.Document().Name()
	case errors.Is(err, engine.ErrNoPath):
		e.openPrompt("Save as", e.session.SaveAs)
	default:
		e.message = err.Error()
	}
}

func (e *Editor) openPrompt(label string, submit func(string) error) {
	e.prompt = &prompt{label: label, submit: submit}
	e.message = ""
}

func (e *Editor) handlePromptKey(ev *tcell.EventKey) {
	p := e.prompt
	switch ev.Key() {
	case tcell.KeyEscape:
		e.prompt = nil
	case tcell.KeyEnter:
		e.prompt = nil
		path := p.value()
		if path == "" {
			return
		}
		if err := p.submit(path); err != nil {
			e.message = err.Error()
			return
		}
		e.top = 0
		e.message = fmt.Sprintf("%s: %s", p.label, e.session.Document().Name())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.backspace()
	case tcell.KeyRune:
		p.insert(ev.Rune())
	}
}
