package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mod7ex/chrome-ext-test/internal/client/controller"
)

const (
	fieldPassword = iota
	fieldConfirmation
	fieldCount
)

type (
	// actionDoneMsg carries the result of a controller action.
	actionDoneMsg struct {
		outcome controller.Outcome
		err     error
	}
	// snapshotMsg is sent when the mirror changes outside Update.
	snapshotMsg controller.Snapshot
	pingTickMsg struct{}
	pingDoneMsg struct{ err error }
)

// Options tunes the model. A zero CheckInterval disables the online probe.
type Options struct {
	CheckInterval time.Duration
	Keys          *KeyMap
}

type Model struct {
	ctx  context.Context
	ctrl *controller.Controller
	keys KeyMap

	checkInterval time.Duration
	online        bool
	probed        bool

	// setupForm is true once Enter was pressed on the setup screen.
	setupForm bool
	inputs    []textinput.Model
	focus     int

	status    string
	statusErr bool
	quitting  bool
}

func New(ctx context.Context, ctrl *controller.Controller, opts Options) Model {
	keys := DefaultKeyMap
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		ti.CharLimit = 256
		inputs[i] = ti
	}
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldConfirmation].Placeholder = "confirm password"

	return Model{
		ctx:           ctx,
		ctrl:          ctrl,
		keys:          keys,
		checkInterval: opts.CheckInterval,
		inputs:        inputs,
	}
}

func (model Model) Init() tea.Cmd {
	cmds := []tea.Cmd{model.refresh(), textinput.Blink}
	if model.checkInterval > 0 {
		cmds = append(cmds, model.ping())
	}
	return tea.Batch(cmds...)
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case actionDoneMsg:
		model.resetInputs()
		if message.err != nil {
			model.setError(message.err)
		} else {
			model.status = ""
			model.statusErr = false
		}
		if model.ctrl.Screen() != controller.ScreenSetup {
			model.setupForm = false
		}
		focus := model.focusForm()
		if message.outcome.Close {
			model.quitting = true
			return model, tea.Quit
		}
		return model, focus

	case snapshotMsg:
		if controller.ScreenFor(message.State) != controller.ScreenSetup {
			model.setupForm = false
		}
		return model, nil

	case pingTickMsg:
		return model, model.ping()

	case pingDoneMsg:
		wasOnline := model.online
		model.online = message.err == nil
		model.probed = true
		next := tea.Tick(model.checkInterval, func(time.Time) tea.Msg { return pingTickMsg{} })
		if model.online && !wasOnline {
			return model, tea.Batch(next, model.refresh())
		}
		return model, next
	}

	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Quit) {
		model.quitting = true
		return model, tea.Quit
	}

	switch model.ctrl.Screen() {
	case controller.ScreenSetup:
		if !model.setupForm {
			if key.Matches(message, model.keys.Submit) {
				model.setupForm = true
				return model, model.focusForm()
			}
			return model, nil
		}
		return model.handleFormKeys(message, func(password, confirmation string) tea.Cmd {
			return model.action(func(ctx context.Context) (controller.Outcome, error) {
				return model.ctrl.CompleteSetup(ctx, password, confirmation)
			})
		})

	case controller.ScreenLogin:
		if key.Matches(message, model.keys.Reset) {
			return model, model.action(model.ctrl.Reset)
		}
		return model.handleFormKeys(message, func(password, confirmation string) tea.Cmd {
			return model.action(func(ctx context.Context) (controller.Outcome, error) {
				return model.ctrl.Login(ctx, password, confirmation)
			})
		})

	case controller.ScreenSecret:
		switch {
		case key.Matches(message, model.keys.Regenerate):
			return model, model.action(model.ctrl.Regenerate)
		case key.Matches(message, model.keys.Logout):
			return model, model.action(model.ctrl.Logout)
		}
	}

	return model, nil
}

// handleFormKeys drives the password/confirmation pair. Enter on the
// password field moves to the confirmation; Enter on the confirmation
// submits.
func (model Model) handleFormKeys(message tea.KeyMsg, submit func(password, confirmation string) tea.Cmd) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Submit):
		if model.focus == fieldPassword {
			model.focus = fieldConfirmation
			return model, model.focusForm()
		}
		password := model.inputs[fieldPassword].Value()
		confirmation := model.inputs[fieldConfirmation].Value()
		if password != confirmation {
			model.resetInputs()
			model.setError(controller.ErrPasswordMismatch)
			return model, model.focusForm()
		}
		return model, submit(password, confirmation)

	case key.Matches(message, model.keys.NextField):
		model.focus = (model.focus + 1) % fieldCount
		return model, model.focusForm()

	case key.Matches(message, model.keys.PrevField):
		model.focus = (model.focus + fieldCount - 1) % fieldCount
		return model, model.focusForm()
	}

	var cmd tea.Cmd
	model.inputs[model.focus], cmd = model.inputs[model.focus].Update(message)
	return model, cmd
}

func (model *Model) focusForm() tea.Cmd {
	var cmd tea.Cmd
	for i := range model.inputs {
		if i == model.focus {
			cmd = model.inputs[i].Focus()
			continue
		}
		model.inputs[i].Blur()
	}
	return cmd
}

func (model *Model) resetInputs() {
	for i := range model.inputs {
		model.inputs[i].Reset()
	}
	model.focus = fieldPassword
}

func (model *Model) setError(err error) {
	model.statusErr = true
	switch {
	case errors.Is(err, controller.ErrBusy):
		model.status = "still working, try again"
	case errors.Is(err, controller.ErrPasswordMismatch):
		model.status = "passwords do not match"
	default:
		model.status = err.Error()
	}
}

func (model Model) action(fn func(ctx context.Context) (controller.Outcome, error)) tea.Cmd {
	ctx := model.ctx
	return func() tea.Msg {
		outcome, err := fn(ctx)
		return actionDoneMsg{outcome: outcome, err: err}
	}
}

func (model Model) refresh() tea.Cmd {
	ctx, ctrl := model.ctx, model.ctrl
	return func() tea.Msg {
		return actionDoneMsg{err: ctrl.Refresh(ctx)}
	}
}

func (model Model) ping() tea.Cmd {
	ctx, ctrl := model.ctx, model.ctrl
	return func() tea.Msg {
		return pingDoneMsg{err: ctrl.Ping(ctx)}
	}
}

func (model Model) View() string {
	if model.quitting {
		return ""
	}

	var b strings.Builder
	snap := model.ctrl.Mirror().Snapshot()

	switch controller.ScreenFor(snap.State) {
	case controller.ScreenSetup:
		if !model.setupForm {
			b.WriteString(titleStyle.Render("Press enter to initialize the vault"))
			b.WriteString("\n")
			b.WriteString(secretStyle.Render(model.ctrl.Candidate()))
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("enter next • esc close"))
			break
		}
		b.WriteString(titleStyle.Render("Choose a password to initialize the vault"))
		b.WriteString("\n")
		model.writeForm(&b)
		b.WriteString(helpStyle.Render("enter submit • tab switch field • esc close"))

	case controller.ScreenLogin:
		b.WriteString(titleStyle.Render("Login"))
		b.WriteString("\n")
		model.writeForm(&b)
		b.WriteString(helpStyle.Render("enter submit • tab switch field • ctrl+r reset • esc close"))

	case controller.ScreenSecret:
		b.WriteString(titleStyle.Render("Your secret key"))
		b.WriteString("\n")
		b.WriteString(secretStyle.Render(snap.State.Secret))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("r regenerate • l logout • esc close"))
	}

	b.WriteString("\n")
	switch {
	case snap.Busy:
		b.WriteString(busyStyle.Render("working…"))
	case model.status != "" && model.statusErr:
		b.WriteString(errorStyle.Render(model.status))
	case model.status != "":
		b.WriteString(model.status)
	}

	if model.probed {
		b.WriteString("\n")
		if model.online {
			b.WriteString(onlineStyle.Render("● online"))
		} else {
			b.WriteString(errorStyle.Render("● offline"))
		}
	}

	return b.String()
}

func (model Model) writeForm(b *strings.Builder) {
	for i := range model.inputs {
		b.WriteString(model.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// Run starts the program and blocks until the user quits, an action asks to
// close, or ctx is cancelled.
func Run(ctx context.Context, ctrl *controller.Controller, opts Options) error {
	program := tea.NewProgram(New(ctx, ctrl, opts), tea.WithContext(ctx), tea.WithAltScreen())

	unsubscribe := ctrl.Mirror().Subscribe(func(s controller.Snapshot) {
		program.Send(snapshotMsg(s))
	})
	defer unsubscribe()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
