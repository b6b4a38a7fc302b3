package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/v-s-abhishek/PickList/internal/session"
)

// authForm is the shared login/signup form. Field order matches the
// arguments of session.Login and session.Signup.
type authForm struct {
	kind   session.Route
	labels []string
	inputs []textinput.Model
	focus  int
	failed bool
}

func newAuthForm(kind session.Route) authForm {
	f := authForm{kind: kind, labels: []string{"Email", "Password"}}
	if kind == session.RouteSignup {
		f.labels = []string{"Name", "Email", "Password"}
	}
	for _, l := range f.labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = 32
		switch l {
		case "Password":
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
			ti.Placeholder = "at least 6 characters"
		case "Email":
			ti.Placeholder = "you@example.com"
		case "Name":
			ti.Placeholder = "Jane Doe"
		}
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

func (f authForm) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

func (f authForm) focusCmd() tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	return textinput.Blink
}

func (f *authForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// submit runs the attempt off the event loop; the artificial delay would
// otherwise freeze the screen.
func (a App) submit() tea.Cmd {
	vals := a.form.values()
	kind := a.form.kind
	ctx, sess := a.ctx, a.sess
	return func() tea.Msg {
		var (
			r   session.Route
			err error
		)
		if kind == session.RouteSignup {
			r, err = sess.Signup(ctx, vals[0], vals[1], vals[2])
		} else {
			r, err = sess.Login(ctx, vals[0], vals[1])
		}
		return authDoneMsg{route: r, err: err}
	}
}

func (a App) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return a.navigate(session.RouteHome), nil
		case "tab", "down":
			a.form.move(1)
			return a, nil
		case "shift+tab", "up":
			a.form.move(-1)
			return a, nil
		case "ctrl+n":
			next := session.RouteSignup
			if a.form.kind == session.RouteSignup {
				next = session.RouteLogin
			}
			a = a.navigate(next)
			return a, a.form.focusCmd()
		case "enter":
			a.busy = true
			return a, tea.Batch(a.spin.Tick, a.submit())
		}
	}
	var cmd tea.Cmd
	a.form.inputs[a.form.focus], cmd = a.form.inputs[a.form.focus].Update(msg)
	return a, cmd
}

func (a App) authView() string {
	s := a.styles
	title, sub := "Welcome back", "Log in to pick up where you left off."
	if a.form.kind == session.RouteSignup {
		title, sub = "Create your account", "Sign up to keep your checklist under your name."
	}

	lines := []string{s.title.Render(title), s.muted.Render(sub), ""}
	for i, in := range a.form.inputs {
		label := a.form.labels[i]
		if i == a.form.focus {
			label = s.accent.Render(label)
		}
		lines = append(lines, label, s.inputBox(in.View()))
	}
	lines = append(lines, "")

	switch {
	case a.busy:
		verb := "Signing in"
		if a.form.kind == session.RouteSignup {
			verb = "Creating account"
		}
		lines = append(lines, a.spin.View()+" "+verb+"...")
	case a.form.failed && a.sess.Err() != "":
		lines = append(lines, s.errorS.Render(a.sess.Err()))
	default:
		label := "Log in"
		if a.form.kind == session.RouteSignup {
			label = "Sign up"
		}
		lines = append(lines, s.selected.Render(" "+label+" "))
	}
	return strings.Join(lines, "\n")
}
