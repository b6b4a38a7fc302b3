package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/v-s-abhishek/PickList/internal/logging"
	"github.com/v-s-abhishek/PickList/internal/model"
	"github.com/v-s-abhishek/PickList/internal/tui"
	"github.com/v-s-abhishek/PickList/internal/ui"
)

// -------------- subcommand impls ----------------

func (r *runner) ls(args []string) int {
	if len(args) != 0 {
		ui.Fail("usage: picklist ls")
		return 2
	}
	cl, err := r.checklist()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	sess, err := r.session()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	t := ui.Current()
	packed, total := cl.PackedItems(), cl.TotalItems()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Packing Checklist"),
		ui.C(t.Success, "✔"), packed,
		ui.C(t.Pending, "•"), total-packed,
		ui.C(t.Accent, "Total"), total,
	)

	var lines []string
	lines = append(lines, header)
	if u, ok := sess.User(); ok {
		lines = append(lines, ui.C(t.Muted, "Welcome, "+u.Name+"!"))
	}
	if total > 0 {
		lines = append(lines,
			ui.C(t.Muted, ui.ProgressBar(cl.CompletionPercentage(), 28)),
			ui.C(t.Muted, fmt.Sprintf("%d of %d items packed", packed, total)),
		)
	}
	lines = append(lines, "")

	cats := cl.Categories()
	if len(cats) == 0 {
		lines = append(lines, ui.C(t.Muted, "no categories"))
	}
	for i, c := range cats {
		lines = append(lines, categoryLine(i+1, c))
		if !c.IsOpen {
			continue
		}
		if r.opt.Group {
			lines = append(lines, groupLines(i+1, c.Items)...)
		} else {
			lines = append(lines, itemLines(i+1, c.Items, nil)...)
		}
	}

	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `picklist add <c> \"Sunscreen\"`"))
	ui.Panel(lines)
	return 0
}

func (r *runner) interactive(args []string) int {
	if len(args) != 0 {
		ui.Fail("usage: picklist tui")
		return 2
	}
	cl, err := r.checklist()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	sess, err := r.session()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	// stderr belongs to the alternate screen now
	logging.Quiet(r.log)
	err = tui.Run(r.ctx, tui.Deps{
		Session:   sess,
		Checklist: cl,
		Store:     r.back,
		Log:       r.log,
		Theme:     ui.Current().Name,
	})
	if err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func (r *runner) cat(args []string) int {
	usage := func() int {
		ui.Fail("usage: picklist cat <add|rename|rm|fold> ...")
		return 2
	}
	if len(args) == 0 {
		return usage()
	}
	cl, err := r.checklist()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	sub, a := args[0], args[1:]
	switch sub {
	case "add":
		name := joinName(a)
		if name == "" {
			ui.Fail("usage: picklist cat add <name...>")
			return 2
		}
		cl.AddCategory(r.ctx, name)
		return r.saved(cl, "added category "+name)

	case "rename":
		if len(a) < 2 {
			ui.Fail("usage: picklist cat rename <c> <name...>")
			return 2
		}
		cat, code := pickCategory(cl, a[0])
		if code != 0 {
			return code
		}
		name := joinName(a[1:])
		if name == "" {
			ui.Fail("cat rename: empty name")
			return 2
		}
		cl.RenameCategory(r.ctx, cat.ID, name)
		return r.saved(cl, "renamed")

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: picklist cat rm <c>")
			return 2
		}
		cat, code := pickCategory(cl, a[0])
		if code != 0 {
			return code
		}
		cl.DeleteCategory(r.ctx, cat.ID)
		return r.saved(cl, fmt.Sprintf("removed %s and %d item(s)", cat.Name, len(cat.Items)))

	case "fold":
		if len(a) != 1 {
			ui.Fail("usage: picklist cat fold <c>")
			return 2
		}
		cat, code := pickCategory(cl, a[0])
		if code != 0 {
			return code
		}
		cl.ToggleCategoryExpanded(r.ctx, cat.ID)
		msg := "collapsed"
		if !cat.IsOpen {
			msg = "expanded"
		}
		return r.saved(cl, msg)
	}
	return usage()
}

func (r *runner) add(args []string) int {
	if len(args) < 2 {
		ui.Fail("usage: picklist add <c> <name...>")
		return 2
	}
	cl, err := r.checklist()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	cat, code := pickCategory(cl, args[0])
	if code != 0 {
		return code
	}
	name := joinName(args[1:])
	if name == "" {
		ui.Fail("add: empty name")
		return 2
	}
	cl.AddItem(r.ctx, cat.ID, name)
	return r.saved(cl, "added to "+cat.Name)
}

func (r *runner) pack(args []string) int {
	if len(args) != 2 {
		ui.Fail("usage: picklist pack <c> <i>")
		return 2
	}
	cl, err := r.checklist()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	cat, it, code := pickItem(cl, args[0], args[1])
	if code != 0 {
		return code
	}
	cl.ToggleItemPacked(r.ctx, cat.ID, it.ID)
	msg := "packed " + it.Name
	if it.Packed {
		msg = "unpacked " + it.Name
	}
	return r.saved(cl, msg)
}

func (r *runner) rename(args []string) int {
	if len(args) < 3 {
		ui.Fail("usage: picklist rename <c> <i> <name...>")
		return 2
	}
	cl, err := r.checklist()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	cat, it, code := pickItem(cl, args[0], args[1])
	if code != 0 {
		return code
	}
	name := joinName(args[2:])
	if name == "" {
		ui.Fail("rename: empty name")
		return 2
	}
	cl.RenameItem(r.ctx, cat.ID, it.ID, name)
	return r.saved(cl, "renamed")
}

func (r *runner) rm(args []string) int {
	if len(args) != 2 {
		ui.Fail("usage: picklist rm <c> <i>")
		return 2
	}
	cl, err := r.checklist()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	cat, it, code := pickItem(cl, args[0], args[1])
	if code != 0 {
		return code
	}
	cl.DeleteItem(r.ctx, cat.ID, it.ID)
	return r.saved(cl, "removed "+it.Name)
}

// -------------- rendering helpers --------------

func categoryLine(n int, c model.Category) string {
	t := ui.Current()
	fold := t.Closed
	if c.IsOpen {
		fold = t.Open
	}
	packed, total := c.Counts()
	counts := fmt.Sprintf("%d/%d", packed, total)
	if total > 0 && packed == total {
		counts = ui.C(t.Success, counts)
	} else {
		counts = ui.C(t.Muted, counts)
	}
	return fmt.Sprintf("%s %s %s %s", ui.Dim(fmt.Sprintf("%2d.", n)), fold, ui.C(t.Title, c.Name), counts)
}

// itemLines renders items under category n. pos maps each item to its
// original 1-based position when the list was filtered.
func itemLines(n int, items []model.Item, pos []int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{"      " + ui.C(t.Muted, "(empty)")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		p := i + 1
		if pos != nil {
			p = pos[i]
		}
		box, color := t.BoxUnchecked, t.Muted
		if it.Packed {
			box, color = t.BoxChecked, t.Success
		}
		name := runewidth.Truncate(it.Name, 60, "...")
		if it.Packed {
			name = ui.Strike(name)
		}
		out = append(out, fmt.Sprintf("    %s %s %s",
			ui.Dim(fmt.Sprintf("%d.%d", n, p)), ui.C(color, box), name))
	}
	return out
}

func groupLines(n int, items []model.Item) []string {
	var pend, done []model.Item
	var pendPos, donePos []int
	for i, it := range items {
		if it.Packed {
			done, donePos = append(done, it), append(donePos, i+1)
		} else {
			pend, pendPos = append(pend, it), append(pendPos, i+1)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, "    "+ui.C(t.Accent, "To pack"))
	if len(pend) == 0 {
		lines = append(lines, "      "+ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(n, pend, pendPos)...)
	}
	lines = append(lines, "    "+ui.C(t.Accent, "Packed"))
	if len(done) == 0 {
		lines = append(lines, "      "+ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(n, done, donePos)...)
	}
	return lines
}
