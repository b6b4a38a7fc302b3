package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/v-s-abhishek/PickList/internal/prefs"
	"github.com/v-s-abhishek/PickList/internal/session"
	"github.com/v-s-abhishek/PickList/internal/ui"
)

func (r *runner) auth(args []string) int {
	usage := func() int {
		ui.Fail("usage: picklist auth <login|signup|logout|status|whoami>")
		return 2
	}
	if len(args) == 0 {
		return usage()
	}
	switch args[0] {
	case "login":
		if len(args) > 2 {
			ui.Fail("usage: picklist auth login [email]")
			return 2
		}
		return r.authLogin(args[1:])
	case "signup":
		return r.authSignup()
	case "logout":
		return r.authLogout()
	case "status":
		return r.authStatus()
	case "whoami":
		return r.authWhoAmI()
	}
	return usage()
}

// prompter reads one answer per line from Options.In.
type prompter struct {
	sc *bufio.Scanner
}

func (r *runner) prompts() *prompter {
	return &prompter{sc: bufio.NewScanner(r.opt.In)}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(ui.Stdout(), label+": ")
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return "", fmt.Errorf("read %s: no input", strings.ToLower(label))
	}
	return p.sc.Text(), nil
}

func (r *runner) authLogin(args []string) int {
	sess, err := r.session()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	p := r.prompts()
	var email string
	if len(args) == 1 {
		email = args[0]
	} else if email, err = p.ask("Email"); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	password, err := p.ask("Password")
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	fmt.Fprintln(ui.Stdout(), ui.Dim("Signing in..."))
	_, err = sess.Login(r.ctx, email, password)
	return r.authResult(sess, err, "logged in")
}

func (r *runner) authSignup() int {
	sess, err := r.session()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	p := r.prompts()
	var answers [3]string
	for i, label := range []string{"Name", "Email", "Password"} {
		if answers[i], err = p.ask(label); err != nil {
			ui.Fail(err.Error())
			return 1
		}
	}

	fmt.Fprintln(ui.Stdout(), ui.Dim("Creating account..."))
	_, err = sess.Signup(r.ctx, answers[0], answers[1], answers[2])
	return r.authResult(sess, err, "signed up")
}

func (r *runner) authResult(sess *session.Manager, err error, msg string) int {
	var verr *session.ValidationError
	switch {
	case err == nil:
		u, _ := sess.User()
		ui.OK(fmt.Sprintf("%s as %s <%s>", msg, u.Name, u.Email))
		return 0
	case errors.As(err, &verr):
		ui.Fail(verr.Msg)
		return 1
	default:
		text := sess.Err()
		if text == "" {
			text = err.Error()
		}
		ui.Fail(text)
		r.log.WithError(err).Debug("auth attempt failed")
		return 1
	}
}

func (r *runner) authLogout() int {
	sess, err := r.session()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if !sess.IsAuthenticated() {
		ui.OK("not logged in (nothing to do)")
		return 0
	}
	if _, err := sess.Logout(r.ctx); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func (r *runner) authStatus() int {
	sess, err := r.session()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	out := ui.Stdout()
	u, ok := sess.User()
	if !ok {
		fmt.Fprintln(out, ui.C(ui.Current().Muted, "not logged in"))
		fmt.Fprintln(out, "Run: picklist auth login")
		return 0
	}
	fmt.Fprintf(out, "state: %s\n", sess.State())
	fmt.Fprintf(out, "name:  %s\n", u.Name)
	fmt.Fprintf(out, "email: %s\n", u.Email)
	fmt.Fprintf(out, "store: %s\n", r.opt.Config.Store)
	return 0
}

func (r *runner) authWhoAmI() int {
	sess, err := r.session()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	u, ok := sess.User()
	if !ok {
		ui.Fail("not logged in. Run: picklist auth login")
		return 2
	}
	fmt.Fprintf(ui.Stdout(), "%s <%s>\n", u.Name, u.Email)
	return 0
}

func (r *runner) theme(args []string) int {
	out := ui.Stdout()
	switch len(args) {
	case 0:
		cur := ui.Current().Name
		for _, n := range ui.Names() {
			mark := "  "
			if n == cur {
				mark = ui.C(ui.Current().Success, "* ")
			}
			fmt.Fprintln(out, mark+n)
		}
		return 0
	case 1:
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if !ui.Known(name) {
			ui.Fail("unknown theme: " + args[0])
			ui.Hint("Hint: one of " + strings.Join(ui.Names(), ", "))
			return 2
		}
		if err := prefs.SetTheme(r.ctx, r.back, name); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		ui.SetTheme(name)
		ui.OK("theme set to " + name)
		return 0
	}
	ui.Fail("usage: picklist theme [" + strings.Join(ui.Names(), "|") + "]")
	return 2
}
