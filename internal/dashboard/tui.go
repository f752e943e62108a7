package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sand/wallet-dashboard/backend/internal/core/ports"
	"github.com/sand/wallet-dashboard/backend/internal/entities"
	"github.com/sand/wallet-dashboard/backend/internal/usecases"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeGoTo
)

// refreshedMsg carries the outcome of one refresh back to the update loop.
type refreshedMsg struct {
	token usecases.RefreshToken
	txs   []entities.Transaction
	err   error
}

// Model is the interactive dashboard. Every state change goes through the
// session; the model only tracks which control has focus.
type Model struct {
	ctx        context.Context
	session    *usecases.Session
	fetcher    ports.TransactionFetcher
	accounts   []string
	accountIdx int
	mode       inputMode
	input      string
}

// NewModel builds the dashboard for accounts, viewing the first one.
func NewModel(ctx context.Context, session *usecases.Session, fetcher ports.TransactionFetcher, accounts []string) Model {
	if len(accounts) > 0 {
		session.SelectAccount(accounts[0])
	}
	return Model{
		ctx:      ctx,
		session:  session,
		fetcher:  fetcher,
		accounts: accounts,
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// refresh starts a new generation in the update loop and fetches off it.
func (m Model) refresh() tea.Cmd {
	token := m.session.BeginRefresh()
	fetcher := m.fetcher
	ctx := m.ctx
	return func() tea.Msg {
		txs, err := fetcher.FetchTransactions(ctx)
		return refreshedMsg{token: token, txs: txs, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		// stale and failed refreshes are already reflected in the session view
		_ = m.session.CompleteRefresh(msg.token, msg.txs, msg.err)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeGoTo:
			return m.updateGoTo(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h", "p":
		m.session.Previous()
	case "right", "l", "n":
		m.session.Next()
	case "tab":
		m.cycleAccount(1)
	case "shift+tab":
		m.cycleAccount(-1)
	case "/":
		m.mode = modeSearch
		m.input = m.session.View().SearchText
	case "c":
		m.input = ""
		m.session.ClearSearch()
	case "g":
		m.mode = modeGoTo
		m.input = ""
	case "r":
		return m, m.refresh()
	}
	return m, nil
}

// updateSearch applies the filter on every keystroke.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			m.input += " "
		}
	default:
		return m, nil
	}
	m.session.SetSearch(m.input)
	return m, nil
}

func (m Model) updateGoTo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if n, err := strconv.Atoi(m.input); err == nil {
			m.session.GoTo(n - 1)
		}
		m.mode = modeBrowse
		m.input = ""
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input = ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m *Model) cycleAccount(step int) {
	if len(m.accounts) == 0 {
		return
	}
	m.accountIdx = (m.accountIdx + step + len(m.accounts)) % len(m.accounts)
	m.session.SelectAccount(m.accounts[m.accountIdx])
}

func (m Model) View() string {
	v := m.session.View()

	var b strings.Builder
	b.WriteString("Wallet Transactions Dashboard\n\n")
	fmt.Fprintf(&b, "Account: %s", v.Account)
	if len(m.accounts) > 1 {
		b.WriteString("  (tab to switch)")
	}
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		fmt.Fprintf(&b, "Search: %s_\n\n", m.input)
	case modeGoTo:
		fmt.Fprintf(&b, "Go to page (1-%d): %s_\n\n", v.TotalPages, m.input)
	default:
		fmt.Fprintf(&b, "Search: %s\n\n", v.SearchText)
	}

	_ = RenderView(&b, v)

	b.WriteString("\n←/→ page  g go to  / search  c clear  r refresh  q quit\n")
	return b.String()
}

// Run starts the interactive dashboard and blocks until the user quits.
func Run(ctx context.Context, session *usecases.Session, fetcher ports.TransactionFetcher, accounts []string) error {
	_, err := tea.NewProgram(NewModel(ctx, session, fetcher, accounts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
