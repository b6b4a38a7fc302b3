// Package tui is the interactive front end: a small router over the home,
// login, signup and checklist screens.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/v-s-abhishek/PickList/internal/checklist"
	"github.com/v-s-abhishek/PickList/internal/prefs"
	"github.com/v-s-abhishek/PickList/internal/session"
	"github.com/v-s-abhishek/PickList/internal/store"
	"github.com/v-s-abhishek/PickList/internal/ui"
)

// Deps are the components the screens read from and dispatch into.
type Deps struct {
	Session   *session.Manager
	Checklist *checklist.Checklist
	Store     store.Store // theme preference
	Log       *logrus.Logger
	Theme     string
}

// authDoneMsg carries the result of a login/signup command.
type authDoneMsg struct {
	route session.Route
	err   error
}

// App is the Bubble Tea model for the whole program.
type App struct {
	// ctx is handed to session and store calls made from commands.
	ctx  context.Context
	sess *session.Manager
	list *checklist.Checklist
	back store.Store
	log  *logrus.Logger

	route  session.Route
	theme  string
	styles styles
	width  int
	height int

	// login / signup
	form authForm
	spin spinner.Model
	busy bool

	// checklist
	keys     listKeys
	help     help.Model
	cursor   int
	mode     editMode
	target   row
	input    textinput.Model
	inputErr string
	status   string
}

// New builds the model on the home screen.
func New(ctx context.Context, d Deps) App {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	theme := d.Theme
	if !ui.Known(theme) {
		theme = ui.DefaultTheme
	}

	a := App{
		ctx:    ctx,
		sess:   d.Session,
		list:   d.Checklist,
		back:   d.Store,
		log:    d.Log,
		route:  session.RouteHome,
		theme:  theme,
		styles: newStyles(theme),
	}
	a.spin = spinner.New()
	a.spin.Spinner = spinner.Dot

	a.keys = newListKeys()
	a.help = newHelp()

	a.input = textinput.New()
	a.input.Prompt = "> "
	a.input.CharLimit = 120
	return a
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, d Deps) error {
	p := tea.NewProgram(New(ctx, d), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Route is the screen currently shown.
func (a App) Route() session.Route { return a.route }

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width - 4
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case authDoneMsg:
		a.busy = false
		if msg.err != nil {
			if !errors.Is(msg.err, session.ErrBusy) {
				a.log.WithError(msg.err).Debug("auth attempt failed")
			}
			a.form.failed = true
			return a, a.form.focusCmd()
		}
		return a.navigate(msg.route), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	switch a.route {
	case session.RouteLogin, session.RouteSignup:
		return a.updateAuth(msg)
	case session.RouteChecklist:
		return a.updateChecklist(msg)
	default:
		return a.updateHome(msg)
	}
}

// navigate switches screens and resets the per-screen state.
func (a App) navigate(r session.Route) App {
	a.route = r
	a.status = ""
	switch r {
	case session.RouteLogin, session.RouteSignup:
		a.form = newAuthForm(r)
	case session.RouteChecklist:
		a.mode = modeNone
		a.clampCursor()
	}
	return a
}

func (a App) logout() App {
	r, err := a.sess.Logout(a.ctx)
	if err != nil {
		a.log.WithError(err).Error("logout")
	}
	return a.navigate(r)
}

func (a App) cycleTheme() App {
	a.theme = ui.Next(a.theme)
	a.styles = newStyles(a.theme)
	if a.back == nil {
		return a
	}
	if err := prefs.SetTheme(a.ctx, a.back, a.theme); err != nil {
		a.log.WithError(err).Warn("theme not saved")
	}
	return a
}

func (a App) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch km.String() {
	case "q", "esc":
		return a, tea.Quit
	case "c", "enter":
		return a.navigate(session.RouteChecklist), nil
	case "l":
		if !a.sess.IsAuthenticated() {
			a = a.navigate(session.RouteLogin)
			return a, a.form.focusCmd()
		}
	case "s":
		if !a.sess.IsAuthenticated() {
			a = a.navigate(session.RouteSignup)
			return a, a.form.focusCmd()
		}
	case "o":
		if a.sess.IsAuthenticated() {
			return a.logout(), nil
		}
	case "t":
		return a.cycleTheme(), nil
	}
	return a, nil
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n\n")
	switch a.route {
	case session.RouteLogin, session.RouteSignup:
		b.WriteString(a.authView())
	case session.RouteChecklist:
		b.WriteString(a.checklistView())
	default:
		b.WriteString(a.homeView())
	}
	b.WriteString("\n\n")
	b.WriteString(a.styles.help.Render(a.helpLine()))
	return a.styles.panel(b.String(), a.width)
}

type tab struct {
	label string
	route session.Route
}

func (a App) header() string {
	s := a.styles
	tabs := []tab{
		{"Home", session.RouteHome},
		{"Checklist", session.RouteChecklist},
	}
	if !a.sess.IsAuthenticated() {
		tabs = append(tabs, tab{"Log in", session.RouteLogin}, tab{"Sign up", session.RouteSignup})
	}

	parts := []string{s.title.Render("PickList")}
	for _, t := range tabs {
		if t.route == a.route {
			parts = append(parts, s.tabOn.Render(t.label))
		} else {
			parts = append(parts, s.tab.Render(t.label))
		}
	}

	who := s.muted.Render("not signed in")
	if u, ok := a.sess.User(); ok {
		who = s.accent.Render("Hi, " + u.Name)
	}
	parts = append(parts, "  ", who, s.muted.Render(" · "+a.theme))
	return strings.Join(parts, " ")
}

func (a App) homeView() string {
	s := a.styles
	lines := []string{
		s.title.Render("Pack smarter, travel lighter."),
		"",
		"Organize your items by category, tick them off as you pack",
		"and always know how much is left.",
		"",
	}
	if u, ok := a.sess.User(); ok {
		lines = append(lines, "Signed in as "+s.accent.Render(u.Email))
	} else {
		lines = append(lines, s.muted.Render("Your checklist stays on this machine. Sign in to make it yours."))
	}
	return strings.Join(lines, "\n")
}

func (a App) helpLine() string {
	switch a.route {
	case session.RouteLogin, session.RouteSignup:
		other := "sign up"
		if a.route == session.RouteSignup {
			other = "log in"
		}
		return "tab next field • enter submit • ctrl+n " + other + " • esc home"
	case session.RouteChecklist:
		if a.mode != modeNone {
			return "enter save • esc cancel"
		}
		k := a.keys
		k.Logout.SetEnabled(a.sess.IsAuthenticated())
		return a.help.View(k)
	default:
		if a.sess.IsAuthenticated() {
			return "c checklist • o log out • t theme • q quit"
		}
		return "c checklist • l log in • s sign up • t theme • q quit"
	}
}
