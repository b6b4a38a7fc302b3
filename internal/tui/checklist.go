package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/v-s-abhishek/PickList/internal/session"
	"github.com/v-s-abhishek/PickList/internal/ui"
)

type editMode int

const (
	modeNone editMode = iota
	modeAddCategory
	modeAddItem
	modeRenameCategory
	modeRenameItem
)

// row is one visible line: a category header (item == "") or an item of
// an open category.
type row struct {
	cat, item string
}

func (a App) rows() []row {
	var out []row
	for _, c := range a.list.Categories() {
		out = append(out, row{cat: c.ID})
		if !c.IsOpen {
			continue
		}
		for _, it := range c.Items {
			out = append(out, row{cat: c.ID, item: it.ID})
		}
	}
	return out
}

func (a *App) clampCursor() {
	n := len(a.rows())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) current() (row, bool) {
	rows := a.rows()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return row{}, false
	}
	return rows[a.cursor], true
}

func (a App) startInput(mode editMode, target row, value, placeholder string) (tea.Model, tea.Cmd) {
	a.mode = mode
	a.target = target
	a.inputErr = ""
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Placeholder = placeholder
	return a, a.input.Focus()
}

func (a App) stopInput() App {
	a.mode = modeNone
	a.inputErr = ""
	a.input.SetValue("")
	a.input.Blur()
	return a
}

func (a App) updateChecklist(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.mode != modeNone {
		return a.updateInput(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	a.status = ""
	cur, hasRow := a.current()
	k := a.keys
	switch {
	case key.Matches(km, k.Quit):
		return a, tea.Quit
	case key.Matches(km, k.Home):
		return a.navigate(session.RouteHome), nil
	case key.Matches(km, k.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(km, k.Down):
		if a.cursor < len(a.rows())-1 {
			a.cursor++
		}
	case key.Matches(km, k.Toggle):
		if !hasRow {
			break
		}
		if cur.item != "" {
			a.list.ToggleItemPacked(a.ctx, cur.cat, cur.item)
		} else {
			a.list.ToggleCategoryExpanded(a.ctx, cur.cat)
		}
	case key.Matches(km, k.Fold):
		if hasRow && cur.item == "" {
			a.list.ToggleCategoryExpanded(a.ctx, cur.cat)
		}
	case key.Matches(km, k.AddCategory):
		return a.startInput(modeAddCategory, row{}, "", "New category name...")
	case key.Matches(km, k.AddItem):
		if !hasRow {
			a.status = "Add a category first (c)"
			break
		}
		return a.startInput(modeAddItem, row{cat: cur.cat}, "", "New item name...")
	case key.Matches(km, k.Rename):
		if !hasRow {
			break
		}
		cat, _ := a.list.Category(cur.cat)
		if cur.item == "" {
			return a.startInput(modeRenameCategory, cur, cat.Name, "Category name...")
		}
		for _, it := range cat.Items {
			if it.ID == cur.item {
				return a.startInput(modeRenameItem, cur, it.Name, "Item name...")
			}
		}
	case key.Matches(km, k.Delete):
		if !hasRow {
			break
		}
		if cur.item == "" {
			a.list.DeleteCategory(a.ctx, cur.cat)
		} else {
			a.list.DeleteItem(a.ctx, cur.cat, cur.item)
		}
	case key.Matches(km, k.Logout):
		if a.sess.IsAuthenticated() {
			return a.logout(), nil
		}
	case key.Matches(km, k.Theme):
		return a.cycleTheme(), nil
	}
	a.clampCursor()
	a.noteSaveError()
	return a, nil
}

func (a App) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return a.stopInput(), nil
		case "enter":
			name := strings.TrimSpace(a.input.Value())
			if name == "" {
				a.inputErr = "Name cannot be empty"
				return a, nil
			}
			switch a.mode {
			case modeAddCategory:
				a.list.AddCategory(a.ctx, name)
				a.cursor = len(a.rows()) - 1
			case modeAddItem:
				if id := a.list.AddItem(a.ctx, a.target.cat, name); id != "" {
					if cat, ok := a.list.Category(a.target.cat); ok && !cat.IsOpen {
						a.list.ToggleCategoryExpanded(a.ctx, cat.ID)
					}
					a.focusRow(row{cat: a.target.cat, item: id})
				}
			case modeRenameCategory:
				a.list.RenameCategory(a.ctx, a.target.cat, name)
			case modeRenameItem:
				a.list.RenameItem(a.ctx, a.target.cat, a.target.item, name)
			}
			a = a.stopInput()
			a.clampCursor()
			a.noteSaveError()
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) focusRow(r row) {
	for i, x := range a.rows() {
		if x == r {
			a.cursor = i
			return
		}
	}
}

func (a *App) noteSaveError() {
	if err := a.list.Err(); err != nil {
		a.status = "Not saved: " + err.Error()
	}
}

func (a App) checklistView() string {
	s := a.styles
	var lines []string

	lines = append(lines, s.title.Render("Your Packing Checklist"))
	welcome := "Organize your items and never forget anything."
	if u, ok := a.sess.User(); ok {
		welcome = fmt.Sprintf("Welcome, %s! %s", u.Name, welcome)
	}
	lines = append(lines, s.muted.Render(welcome), "")

	if total := a.list.TotalItems(); total > 0 {
		packed := a.list.PackedItems()
		lines = append(lines,
			fmt.Sprintf("Packing Progress   %s %d  %s %d  %s",
				s.success.Render("✔"), packed,
				s.pending.Render("•"), total-packed,
				s.muted.Render(fmt.Sprintf("%d of %d items packed", packed, total))),
			s.success.Render(ui.ProgressBar(a.list.CompletionPercentage(), 30)),
			"",
		)
	}

	body, at := a.rowLines()
	if len(body) == 0 {
		body = []string{s.muted.Render("No categories yet. Press c to add one.")}
	}
	lines = append(lines, a.window(body, at)...)

	if a.mode != modeNone {
		title := map[editMode]string{
			modeAddCategory:    "Add category",
			modeAddItem:        "Add item",
			modeRenameCategory: "Rename category",
			modeRenameItem:     "Rename item",
		}[a.mode]
		if a.inputErr != "" {
			title += " - " + s.errorS.Render(a.inputErr)
		}
		lines = append(lines, "", s.inputBox(title+"\n"+a.input.View()))
	}
	if a.status != "" {
		lines = append(lines, "", s.errorS.Render(a.status))
	}
	return strings.Join(lines, "\n")
}

// rowLines renders the rows and reports which line holds the cursor.
func (a App) rowLines() ([]string, int) {
	s := a.styles
	var out []string
	i, at := 0, 0
	for _, c := range a.list.Categories() {
		packed, total := c.Counts()
		fold := s.closed
		if c.IsOpen {
			fold = s.open
		}
		line := fmt.Sprintf("%s %s %s", fold, s.title.Render(c.Name), s.muted.Render(fmt.Sprintf("%d/%d", packed, total)))
		if i == a.cursor {
			at = len(out)
		}
		out = append(out, a.prefix(i)+line)
		i++
		if !c.IsOpen {
			continue
		}
		if len(c.Items) == 0 {
			out = append(out, "      "+s.muted.Render("(empty)"))
		}
		for _, it := range c.Items {
			box, name := s.muted.Render(s.boxUnchecked), it.Name
			if it.Packed {
				box, name = s.success.Render(s.boxChecked), s.done.Render(it.Name)
			}
			if i == a.cursor {
				at = len(out)
			}
			out = append(out, a.prefix(i)+"    "+box+" "+name)
			i++
		}
	}
	return out, at
}

func (a App) prefix(i int) string {
	if i == a.cursor && a.mode == modeNone {
		return a.styles.selected.Render("> ")
	}
	return "  "
}

// window keeps the cursor visible when the list is taller than the screen.
func (a App) window(lines []string, at int) []string {
	room := a.height - 16
	if a.height == 0 || room >= len(lines) || room < 3 {
		return lines
	}
	start := at - room/2
	if start < 0 {
		start = 0
	}
	if start+room > len(lines) {
		start = len(lines) - room
	}
	return lines[start : start+room]
}
