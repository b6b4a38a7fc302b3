package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/v-s-abhishek/PickList/internal/checklist"
	"github.com/v-s-abhishek/PickList/internal/config"
	"github.com/v-s-abhishek/PickList/internal/logging"
	"github.com/v-s-abhishek/PickList/internal/model"
	"github.com/v-s-abhishek/PickList/internal/prefs"
	"github.com/v-s-abhishek/PickList/internal/session"
	"github.com/v-s-abhishek/PickList/internal/store"
	"github.com/v-s-abhishek/PickList/internal/store/jsonstore"
	"github.com/v-s-abhishek/PickList/internal/store/memstore"
	"github.com/v-s-abhishek/PickList/internal/store/redisstore"
	"github.com/v-s-abhishek/PickList/internal/store/sqlstore"
	"github.com/v-s-abhishek/PickList/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group  bool // split each category into "To pack" / "Packed"
	Config config.Config
	In     io.Reader // answers to auth prompts; os.Stdin when nil
}

type command func(r *runner, args []string) int

var commands = map[string]command{
	"ls":     (*runner).ls,
	"tui":    (*runner).interactive,
	"cat":    (*runner).cat,
	"add":    (*runner).add,
	"pack":   (*runner).pack,
	"rename": (*runner).rename,
	"rm":     (*runner).rm,
	"auth":   (*runner).auth,
	"theme":  (*runner).theme,
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	name, a := args[0], args[1:]

	switch name {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		ui.Fail("unknown subcommand: " + name)
		ui.Hint("")
		PrintHelp()
		return 2
	}

	r, err := start(ctx, opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer r.close()
	return cmd(r, a)
}

func PrintHelp() {
	fmt.Fprint(ui.Stdout(), `picklist - a packing checklist for your terminal

Usage:
  picklist [flags] <subcommand> [args]

Subcommands:
  ls                          List categories and items with progress
  tui                         Interactive checklist
  cat add <name...>           Add a category
  cat rename <c> <name...>    Rename category c
  cat rm <c>                  Delete category c and its items
  cat fold <c>                Collapse or expand category c
  add <c> <name...>           Add an item to category c
  pack <c> <i>                Toggle packed for item i of category c
  rename <c> <i> <name...>    Rename item i of category c
  rm <c> <i>                  Delete item i of category c
  auth login [email]          Log in (prompts for what is missing)
  auth signup                 Create an account
  auth logout|status|whoami   Session management
  theme [classic|neon|mono]   Show or set the theme

Flags:
  -group    split each category into "To pack" and "Packed"
  -store    json, sqlite, redis or memory
  -data     data directory for the json store
  -theme    theme for this run only
  -debug    verbose logging

Examples:
  picklist cat add Documents
  picklist add 4 Passport
  picklist pack 4 1
  picklist ls
`)
}

// runner holds what a single invocation needs: the opened backend and the
// lazily opened checklist and session.
type runner struct {
	ctx     context.Context
	opt     Options
	log     *logrus.Logger
	back    store.Store
	closers []io.Closer

	list *checklist.Checklist
	sess *session.Manager
}

func start(ctx context.Context, opt Options) (*runner, error) {
	if opt.In == nil {
		opt.In = os.Stdin
	}
	log, logCloser, err := logging.New(opt.Config)
	if err != nil {
		return nil, err
	}
	r := &runner{ctx: ctx, opt: opt, log: log, closers: []io.Closer{logCloser}}

	back, closer, err := openBackend(ctx, opt.Config, log)
	if err != nil {
		r.close()
		return nil, err
	}
	r.back = back
	if closer != nil {
		r.closers = append(r.closers, closer)
	}
	log.WithField("store", opt.Config.Store).Debug("backend ready")

	ui.SetTheme(r.themeName())
	return r, nil
}

// openBackend picks the storage adapter named by cfg.Store.
func openBackend(ctx context.Context, cfg config.Config, log *logrus.Logger) (store.Store, io.Closer, error) {
	switch cfg.Store {
	case config.StoreJSON, "":
		return jsonstore.New(cfg.DataDir), nil, nil
	case config.StoreSQLite:
		s, err := sqlstore.Open(cfg.DSN(), log)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, s, nil
	case config.StoreRedis:
		s, err := redisstore.Dial(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		return s, s, nil
	case config.StoreMemory:
		return memstore.New(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

func (r *runner) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			r.log.WithError(err).Warn("close")
		}
	}
}

// themeName is the -theme / PICKLIST_THEME override, else the stored
// preference.
func (r *runner) themeName() string {
	if t := r.opt.Config.Theme; ui.Known(t) {
		return t
	}
	name, err := prefs.Theme(r.ctx, r.back)
	if err != nil {
		r.log.WithError(err).Warn("theme preference unavailable")
	}
	return name
}

func (r *runner) checklist() (*checklist.Checklist, error) {
	if r.list != nil {
		return r.list, nil
	}
	cl, err := checklist.Open(r.ctx, r.back, checklist.WithLogger(r.log))
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}
	r.list = cl
	return cl, nil
}

func (r *runner) session() (*session.Manager, error) {
	if r.sess != nil {
		return r.sess, nil
	}
	m, err := session.Open(r.ctx, r.back,
		session.WithLogger(r.log),
		session.WithDelay(r.opt.Config.AuthDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	r.sess = m
	return m, nil
}

// saved reports a failed write-through after a mutation.
func (r *runner) saved(cl *checklist.Checklist, msg string) int {
	if err := cl.Err(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(msg)
	return 0
}

// -------------- index helpers --------------

func parseIndex(what, s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		ui.Fail(what + ": not a number: " + s)
		return 0, false
	}
	return n, true
}

func outOfRange(have, got int) {
	ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", have, got))
	ui.Hint("Hint: run `picklist ls` to see valid indexes")
}

// pickCategory resolves a 1-based category index as printed by ls.
func pickCategory(cl *checklist.Checklist, arg string) (model.Category, int) {
	n, ok := parseIndex("category", arg)
	if !ok {
		return model.Category{}, 2
	}
	cats := cl.Categories()
	if n < 1 || n > len(cats) {
		outOfRange(len(cats), n)
		return model.Category{}, 2
	}
	return cats[n-1], 0
}

func pickItem(cl *checklist.Checklist, catArg, itemArg string) (model.Category, model.Item, int) {
	cat, code := pickCategory(cl, catArg)
	if code != 0 {
		return cat, model.Item{}, code
	}
	n, ok := parseIndex("item", itemArg)
	if !ok {
		return cat, model.Item{}, 2
	}
	if n < 1 || n > len(cat.Items) {
		outOfRange(len(cat.Items), n)
		return cat, model.Item{}, 2
	}
	return cat, cat.Items[n-1], 0
}

func joinName(args []string) string { return strings.TrimSpace(strings.Join(args, " ")) }
