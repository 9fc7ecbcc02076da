package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
	"github.com/Ikanga93/ritt-ai-assistant/internal/order"
)

const (
	minTUIWidth  = 80
	minTUIHeight = 20

	tuiCandidateCount = 5
)

var (
	tuiHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	tuiMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tuiValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiSpecialStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tuiItemStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiMissStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	tuiSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
)

type tuiLoadConfig struct {
	session      *orderSession
	initialLines []string
}

// tuiOrderEntry keeps what was said next to what it verified as.
type tuiOrderEntry struct {
	text      string
	requested order.RequestedLine
	result    order.VerifiedLine
}

type tuiLinesVerifiedMsg struct {
	entries []tuiOrderEntry
}

type tuiFocus int

const (
	tuiFocusInput tuiFocus = iota
	tuiFocusList
	tuiFocusDetail
)

func (f tuiFocus) String() string {
	switch f {
	case tuiFocusList:
		return "order"
	case tuiFocusDetail:
		return "detail"
	default:
		return "input"
	}
}

type tuiLineItem struct {
	index       int
	entry       tuiOrderEntry
	title       string
	description string
}

func (l tuiLineItem) FilterValue() string {
	return strings.ToLower(l.entry.text + " " + l.entry.result.Name)
}
func (l tuiLineItem) Title() string       { return l.title }
func (l tuiLineItem) Description() string { return l.description }

type orderTUIModel struct {
	loading bool
	pending int
	spinner spinner.Model
	loadCmd tea.Cmd

	session *orderSession
	entries []tuiOrderEntry
	results []order.VerifiedLine

	input  textinput.Model
	list   list.Model
	detail viewport.Model

	focus    tuiFocus
	showHelp bool

	width, height   int
	bodyHeight      int
	listPaneWidth   int
	detailPaneWidth int
	tooSmall        bool
}

func newOrderTUIModel(cfg tuiLoadConfig) orderTUIModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(1)

	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Order"
	lst.SetStatusBarItemName("line", "lines")
	lst.SetShowStatusBar(true)
	lst.SetFilteringEnabled(true)
	lst.SetShowHelp(false)
	lst.SetShowPagination(true)
	lst.DisableQuitKeybindings()

	detail := viewport.New(0, 0)
	detail.KeyMap.PageDown.SetKeys("f", "pgdown")
	detail.KeyMap.PageUp.SetKeys("b", "pgup")
	detail.KeyMap.HalfPageDown.SetKeys("d")
	detail.KeyMap.HalfPageUp.SetKeys("u")

	input := textinput.New()
	input.Placeholder = `say an order line, e.g. "two lattes no foam"`
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	return orderTUIModel{
		loading: true,
		spinner: spin,
		loadCmd: verifyLinesCmd(cfg.session, cfg.initialLines),
		session: cfg.session,
		input:   input,
		list:    lst,
		detail:  detail,
		focus:   tuiFocusInput,
	}
}

// verifyLinesCmd verifies texts off the UI goroutine.
func verifyLinesCmd(session *orderSession, texts []string) tea.Cmd {
	return func() tea.Msg {
		entries := make([]tuiOrderEntry, 0, len(texts))
		for _, text := range texts {
			req, line := session.verifyText(text)
			entries = append(entries, tuiOrderEntry{text: text, requested: req, result: line})
		}
		return tuiLinesVerifiedMsg{entries: entries}
	}
}

func (m orderTUIModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink, m.loadCmd)
}

func (m orderTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tuiLinesVerifiedMsg:
		if m.loading {
			m.loading = false
		} else {
			m.pending = maxInt(0, m.pending-1)
		}
		m.entries = append(m.entries, msg.entries...)
		m.rebuild()
		if len(msg.entries) > 0 {
			m.list.Select(len(m.entries) - 1)
			m.refreshDetail(true)
		}
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}
	if !isKey {
		return m.updateFocused(msg)
	}

	key := keyMsg.String()
	if key == "tab" && m.list.FilterState() != list.Filtering {
		m.setFocus((m.focus + 1) % 3)
		return m, nil
	}

	switch m.focus {
	case tuiFocusInput:
		switch key {
		case "enter":
			return m.submitInput()
		case "esc":
			m.setFocus(tuiFocusList)
			return m, nil
		}
	case tuiFocusList:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch key {
		case "q":
			return m, tea.Quit
		case "i", "a":
			m.setFocus(tuiFocusInput)
			return m, nil
		case "x", "delete":
			m.removeSelected()
			return m, nil
		case "s":
			return m, m.acceptSuggestion()
		case "c":
			m.entries = nil
			m.rebuild()
			return m, m.list.NewStatusMessage("Order cleared.")
		case "?":
			m.showHelp = !m.showHelp
			m.resize()
			return m, nil
		}
	case tuiFocusDetail:
		switch key {
		case "esc":
			m.setFocus(tuiFocusList)
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	return m.updateFocused(msg)
}

func (m orderTUIModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case tuiFocusInput:
		m.input, cmd = m.input.Update(msg)
	case tuiFocusDetail:
		m.detail, cmd = m.detail.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
		m.refreshDetail(false)
	}
	return m, cmd
}

func (m *orderTUIModel) setFocus(f tuiFocus) {
	m.focus = f
	if f == tuiFocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m orderTUIModel) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.pending++
	return m, tea.Batch(m.spinner.Tick, verifyLinesCmd(m.session, []string{text}))
}

func (m *orderTUIModel) selectedIndex() int {
	item, ok := m.list.SelectedItem().(tuiLineItem)
	if !ok {
		return -1
	}
	return item.index
}

func (m *orderTUIModel) removeSelected() {
	i := m.selectedIndex()
	if i < 0 || i >= len(m.entries) {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.rebuild()
	if i >= len(m.entries) {
		i = len(m.entries) - 1
	}
	if i >= 0 {
		m.list.Select(i)
	}
	m.refreshDetail(true)
}

// acceptSuggestion re-verifies the selected line as its suggested menu item,
// keeping the quantity and modifiers.
func (m *orderTUIModel) acceptSuggestion() tea.Cmd {
	i := m.selectedIndex()
	if i < 0 || i >= len(m.entries) {
		return nil
	}
	entry := m.entries[i]
	if entry.result.Suggestion == "" {
		return m.list.NewStatusMessage("No suggestion for this line.")
	}

	name := strings.TrimSpace(entry.result.Suggestion + " " + strings.Join(entry.result.Modifiers, " "))
	req := order.RequestedLine{Name: name, Quantity: entry.requested.Quantity, PriceHint: entry.requested.PriceHint}
	m.entries[i] = tuiOrderEntry{text: name, requested: req, result: m.session.verify(req)}
	m.rebuild()
	m.list.Select(i)
	m.refreshDetail(true)
	return m.list.NewStatusMessage(fmt.Sprintf("Using %q.", entry.result.Suggestion))
}

func (m *orderTUIModel) rebuild() {
	m.results = make([]order.VerifiedLine, 0, len(m.entries))
	items := make([]list.Item, 0, len(m.entries))
	for i, e := range m.entries {
		m.results = append(m.results, e.result)
		items = append(items, buildTUILineItem(i, e))
	}
	m.list.Title = fmt.Sprintf("Order • %d lines", len(items))
	m.list.SetItems(items)
	m.refreshDetail(false)
}

func (m *orderTUIModel) refreshDetail(resetScroll bool) {
	content := "No lines yet.\n\nType an order line and press Enter."
	if item, ok := m.list.SelectedItem().(tuiLineItem); ok {
		content = renderLineDetailContent(item.entry, m.session.items, m.detail.Width)
	}
	if resetScroll {
		m.detail.GotoTop()
	}
	m.detail.SetContent(content)
}

func (m orderTUIModel) View() string {
	if m.loading {
		return m.loadingView()
	}
	if m.width == 0 || m.height == 0 {
		return tuiMetaStyle.Render("Loading interface...")
	}
	if m.tooSmall {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Render(
				fmt.Sprintf(
					"Terminal too small (%dx%d).\nResize to at least %dx%d for the order session.",
					m.width, m.height, minTUIWidth, minTUIHeight,
				),
			)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		m.inputView(),
		m.bodyView(),
		m.footerView(),
	)
}

func (m orderTUIModel) loadingView() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	lines := []string{
		tuiHeaderStyle.Render("rittmatch tui"),
		tuiMetaStyle.Render("Preparing order session..."),
		"",
		fmt.Sprintf("%s Loading %s menu", m.spinner.View(), m.session.restaurant.Name),
		tuiHintStyle.Render("Tip: press ctrl+c to cancel."),
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func (m *orderTUIModel) resize() {
	if m.width == 0 || m.height == 0 || m.loading {
		return
	}

	m.tooSmall = m.width < minTUIWidth || m.height < minTUIHeight
	if m.tooSmall {
		return
	}

	headerH := 3
	inputH := 1
	footerH := 2
	if m.showHelp {
		footerH = 6
	}
	m.bodyHeight = maxInt(6, m.height-headerH-inputH-footerH-1)

	listWidth := maxInt(36, int(float64(m.width)*0.45))
	if listWidth > m.width-38 {
		listWidth = m.width / 2
	}
	detailWidth := m.width - listWidth - 1
	if detailWidth < 34 {
		detailWidth = 34
		listWidth = m.width - detailWidth - 1
	}

	m.listPaneWidth = listWidth
	m.detailPaneWidth = detailWidth
	m.input.Width = maxInt(20, m.width-6)

	panelInnerHeight := maxInt(4, m.bodyHeight-2)
	m.list.SetSize(maxInt(24, listWidth-4), panelInnerHeight)
	m.detail.Width = maxInt(24, detailWidth-4)
	m.detail.Height = panelInnerHeight
	m.refreshDetail(false)
}

func (m orderTUIModel) headerView() string {
	verified, special, unverified := display.Tally(m.results)
	top := fmt.Sprintf("rittmatch tui  |  %s", m.session.restaurant.Name)
	bottom := fmt.Sprintf(
		"%d verified • %d special • %d unverified  |  subtotal %s  |  focus: %s",
		verified, special, unverified, display.FormatPrice(order.Subtotal(m.results)), m.focus,
	)
	if m.pending > 0 {
		bottom = m.spinner.View() + " " + bottom
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(tuiHeaderStyle.Render(top) + "\n" + tuiMetaStyle.Render(bottom))
}

func (m orderTUIModel) inputView() string {
	return lipgloss.NewStyle().Padding(0, 1).Render(m.input.View())
}

func (m orderTUIModel) bodyView() string {
	listBorder := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)
	detailBorder := listBorder

	switch m.focus {
	case tuiFocusList:
		listBorder = listBorder.BorderForeground(lipgloss.Color("86"))
	case tuiFocusDetail:
		detailBorder = detailBorder.BorderForeground(lipgloss.Color("86"))
	}

	left := listBorder.
		Width(m.listPaneWidth).
		Height(m.bodyHeight).
		Render(m.list.View())
	right := detailBorder.
		Width(m.detailPaneWidth).
		Height(m.bodyHeight).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m orderTUIModel) footerView() string {
	var base string
	switch m.focus {
	case tuiFocusInput:
		base = "Enter verify line • Tab order list • Esc order list • ctrl+c quit"
	case tuiFocusDetail:
		base = "Detail: j/k or ↑/↓ scroll • u/d half-page • b/f page • esc order list • q quit"
	default:
		base = "Tab switch pane • i add line • s accept suggestion • x remove • c clear • / filter • ? help • q quit"
	}

	if !m.showHelp {
		return lipgloss.NewStyle().Padding(0, 1).Render(tuiHintStyle.Render(base))
	}

	lines := []string{
		"Key Help",
		"input: type a line like \"2 lattes no foam\" or \"extra napkins\" • Enter verifies it",
		"order pane: ↑/↓ or j/k move • / filter • s use the suggested item • x remove line • c clear order",
		"global: tab cycle input/order/detail • esc back to order • ? toggle help • q quit • ctrl+c force quit",
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(tuiHintStyle.Render(strings.Join(lines, "\n")))
}

func buildTUILineItem(index int, e tuiOrderEntry) tuiLineItem {
	l := e.result
	item := tuiLineItem{index: index, entry: e}

	switch l.Status() {
	case order.StatusVerified:
		item.title = fmt.Sprintf("%dx %s", l.Quantity, l.Name)
		parts := []string{display.FormatPrice(l.Price * float64(l.Quantity))}
		if l.SpecialInstructions != "" {
			parts = append(parts, l.SpecialInstructions)
		}
		item.description = strings.Join(parts, "  •  ")
	case order.StatusSpecial:
		item.title = "Note: " + l.SpecialInstructions
		item.description = "special instruction"
	default:
		item.title = fmt.Sprintf("%dx %s ?", l.Quantity, l.Name)
		item.description = "not on the menu"
		if l.Suggestion != "" {
			item.description += fmt.Sprintf("  •  did you mean %s? (s)", l.Suggestion)
		}
	}
	return item
}

func renderLineDetailContent(e tuiOrderEntry, menu []catalog.Entry, width int) string {
	maxWidth := maxInt(24, width)
	l := e.result

	lines := []string{
		tuiMetaStyle.Render("Heard: ") + wrapText(fmt.Sprintf("%q", e.text), maxWidth),
		"",
	}

	switch l.Status() {
	case order.StatusVerified:
		lines = append(lines,
			tuiItemStyle.Render(wrapText(l.Name, maxWidth)),
			fmt.Sprintf("%s %d × %s = %s", tuiMetaStyle.Render("Price:"), l.Quantity,
				display.FormatPrice(l.Price), tuiValueStyle.Render(display.FormatPrice(l.Price*float64(l.Quantity)))),
			fmt.Sprintf("%s %.2f", tuiMetaStyle.Render("Confidence:"), l.Confidence),
		)
		if l.ID != "" {
			lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Menu id:"), l.ID))
		}
		if len(l.Modifiers) > 0 {
			lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Modifiers:"), wrapText(strings.Join(l.Modifiers, ", "), maxWidth)))
		}
	case order.StatusSpecial:
		lines = append(lines,
			tuiSpecialStyle.Render("Special instruction"),
			wrapText(l.SpecialInstructions, maxWidth),
		)
	default:
		lines = append(lines,
			tuiMissStyle.Render("Not on the menu"),
			fmt.Sprintf("%s %.2f", tuiMetaStyle.Render("Best score:"), l.Confidence),
		)
		if l.Suggestion != "" {
			lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Did you mean:"), tuiValueStyle.Render(l.Suggestion)))
		}
	}

	if candidates := rankCandidates(e.requested.Name, menu, tuiCandidateCount); len(candidates) > 0 {
		lines = append(lines, "", tuiSectionStyle.Render("Closest menu items"))
		for _, c := range candidates {
			lines = append(lines, fmt.Sprintf("  %.3f  %s  %s", c.score, c.name, tuiMetaStyle.Render(string(c.step))))
		}
	}

	return strings.Join(lines, "\n")
}

type tuiCandidate struct {
	name  string
	score float64
	step  fuzzy.Step
}

// rankCandidates scores the item part of a spoken line against every menu
// name, best first.
func rankCandidates(spoken string, menu []catalog.Entry, limit int) []tuiCandidate {
	base, _ := order.ExtractModifiers(spoken)
	query := fuzzy.Normalize(base)
	if query == "" {
		query = strings.ToLower(strings.TrimSpace(base))
	}
	if query == "" {
		return nil
	}

	ranked := fuzzy.FindAllMatchesAbove(query, catalog.Names(menu), 0)
	out := make([]tuiCandidate, 0, limit)
	for _, r := range ranked {
		if len(out) == limit || r.Similarity == 0 {
			break
		}
		_, step := fuzzy.Explain(query, r.MatchedText)
		out = append(out, tuiCandidate{name: r.MatchedText, score: r.Similarity, step: step})
	}
	return out
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if width < 12 {
		width = 12
	}

	line := words[0]
	lines := make([]string, 0, len(words)/6+1)
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
