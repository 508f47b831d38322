package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Entry is one selectable catalog row.
type Entry struct {
	ID       string
	Title    string
	Subtitle string
}

var ErrCanceled = errors.New("selection canceled")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// InteractiveSearch runs a full-screen search-and-pick loop: type a query,
// Enter to search, Tab to move focus to the result list, Enter to select.
func InteractiveSearch(ctx context.Context, title, initialQuery string, searchFn func(context.Context, string) ([]Entry, error)) (*Entry, error) {
	model := newSearchModel(ctx, title, initialQuery, searchFn)
	program := tea.NewProgram(model)
	result, err := program.Run()
	if err != nil {
		return nil, err
	}
	m, ok := result.(searchModel)
	if !ok || m.selected == nil {
		return nil, ErrCanceled
	}
	return m.selected, nil
}

type searchModel struct {
	ctx      context.Context
	searchFn func(context.Context, string) ([]Entry, error)
	input    textinput.Model
	list     list.Model
	focused  bool
	query    string
	status   string
	selected *Entry
	title    string
}

type resultsMsg struct {
	entries []Entry
	err     error
}

func newSearchModel(ctx context.Context, title, initialQuery string, searchFn func(context.Context, string) ([]Entry, error)) searchModel {
	input := textinput.New()
	input.Placeholder = "Search..."
	input.SetValue(initialQuery)
	input.Focus()
	input.Prompt = "> "

	lst := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	lst.Title = "Results"
	lst.SetShowHelp(false)

	return searchModel{
		ctx:      ctx,
		searchFn: searchFn,
		input:    input,
		list:     lst,
		focused:  true,
		query:    initialQuery,
		status:   "Type and press Enter to search",
		title:    title,
	}
}

func (m searchModel) Init() tea.Cmd {
	if m.query != "" {
		return m.search(m.query)
	}
	return nil
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focused = !m.focused
			if m.focused {
				m.input.Focus()
			} else {
				m.input.Blur()
			}
			return m, nil
		case "enter":
			if m.focused {
				query := m.input.Value()
				if query == "" {
					m.status = "Enter a query to search"
					return m, nil
				}
				m.query = query
				m.status = "Searching..."
				return m, m.search(query)
			}
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				selected := item.entry
				m.selected = &selected
				return m, tea.Quit
			}
			return m, nil
		}
	case resultsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.entries))
		for _, e := range msg.entries {
			items = append(items, entryItem{entry: e})
		}
		m.list.SetItems(items)
		if len(items) == 0 {
			m.status = "No results"
		} else {
			m.status = fmt.Sprintf("%d results", len(items))
		}
		return m, nil
	case tea.WindowSizeMsg:
		height := msg.Height - 8
		if height < 4 {
			height = 4
		}
		width := msg.Width - 2
		if width < 20 {
			width = 20
		}
		m.list.SetSize(width, height)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m searchModel) View() string {
	help := "Enter=search, Tab=toggle, up/down navigate, Enter=select, Esc=quit"
	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n",
		titleStyle.Render(m.title),
		m.input.View(),
		m.list.View(),
		statusStyle.Render(m.status+"\n"+help))
}

func (m searchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.searchFn(m.ctx, query)
		return resultsMsg{entries: entries, err: err}
	}
}

type entryItem struct {
	entry Entry
}

func (e entryItem) Title() string       { return e.entry.Title }
func (e entryItem) Description() string { return e.entry.Subtitle }
func (e entryItem) FilterValue() string { return e.entry.Title }
