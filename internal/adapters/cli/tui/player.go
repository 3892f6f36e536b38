package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/follow"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/playback"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	uncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeStyle    = lipgloss.NewStyle().Reverse(true)
	timeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	subtitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	trackStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	spanStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	thumbStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

const seekStep = 10.0

// TransportPlayer is what the player screen needs beyond the core media
// interface: knowing whether the clock is currently running.
type TransportPlayer interface {
	ports.MediaPlayer
	Playing() bool
}

// snapshotMsg carries a store update into the bubbletea loop.
type snapshotMsg struct {
	snap store.Snapshot
}

// scrollMsg asks the transcript pane to bring a sentence into view.
type scrollMsg struct {
	sentenceIndex int
}

type rowKind int

const (
	rowSection rowKind = iota
	rowSentence
)

// row is one rendered line of the transcript pane.
type row struct {
	kind          rowKind
	text          string
	sentenceIndex int
	timeLabel     string
}

// PlayerModel is the bubbletea model for the player screen: a seek bar, the
// transcript pane, and a subtitle line that tracks the playhead.
type PlayerModel struct {
	st     *store.Store
	ctrl   *playback.Controller
	player TransportPlayer
	title  string

	snap          store.Snapshot
	rows          []row
	rowBySentence map[int]int
	cursor        int

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	status   string
}

// NewPlayerModel creates the player screen over an already loaded store.
func NewPlayerModel(st *store.Store, ctrl *playback.Controller, player TransportPlayer, title string) PlayerModel {
	m := PlayerModel{
		st:     st,
		ctrl:   ctrl,
		player: player,
		title:  title,
		snap:   st.Snapshot(),
	}
	m.rows, m.rowBySentence = buildRows(m.snap.Sections)
	m.cursor = firstSentenceRow(m.rows)
	return m
}

// buildRows flattens sections into display rows and records where each
// sentence landed, so scroll targets can be resolved by sentence index.
func buildRows(sections []domain.SectionEntry) ([]row, map[int]int) {
	var rows []row
	bySentence := make(map[int]int)
	for _, sec := range sections {
		rows = append(rows, row{kind: rowSection, text: sec.Title})
		for _, s := range sec.Sentences {
			bySentence[s.SentenceIndex] = len(rows)
			rows = append(rows, row{
				kind:          rowSentence,
				text:          s.Sentence,
				sentenceIndex: s.SentenceIndex,
				timeLabel:     FormatClock(s.Time),
			})
		}
	}
	return rows, bySentence
}

func firstSentenceRow(rows []row) int {
	for i, r := range rows {
		if r.kind == rowSentence {
			return i
		}
	}
	return 0
}

func (m PlayerModel) Init() tea.Cmd {
	return nil
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vh := msg.Height - m.chromeHeight()
		if vh < 1 {
			vh = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vh)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vh
		}
		m.viewport.SetContent(m.renderRows())

	case snapshotMsg:
		reloaded := !sameSections(m.snap.Sections, msg.snap.Sections)
		m.snap = msg.snap
		if reloaded {
			m.rows, m.rowBySentence = buildRows(m.snap.Sections)
			m.cursor = firstSentenceRow(m.rows)
			if m.ready {
				m.viewport.GotoTop()
			}
		}
		if m.ready {
			m.viewport.SetContent(m.renderRows())
		}

	case scrollMsg:
		m.centerOn(msg.sentenceIndex)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m PlayerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "pgup":
		m.viewport.HalfViewUp()

	case "pgdown":
		m.viewport.HalfViewDown()

	case "enter":
		if r, ok := m.cursorRow(); ok {
			m.st.ToggleHighlight(r.sentenceIndex)
		}

	case "t":
		if r, ok := m.cursorRow(); ok {
			if rec, found := m.snap.Index.DataHash[r.sentenceIndex]; found {
				m.st.RequestSeek(rec.Time)
			}
		}

	case " ":
		if m.ctrl.State() == playback.Playing {
			m.ctrl.Stop()
		} else if m.player.Playing() {
			m.player.Pause()
		} else {
			m.player.Play()
		}

	case "h":
		if m.ctrl.State() == playback.Playing {
			m.ctrl.Stop()
		} else if err := m.ctrl.Start(); err != nil {
			m.status = "no highlights selected"
		}

	case "left":
		m.seekBy(-seekStep)

	case "right":
		m.seekBy(seekStep)

	case "c":
		m.copyHighlights()
	}

	// Mutations made above notified the store synchronously; re-read here so
	// the keypress is reflected immediately instead of waiting for the echo
	// to travel back through the feed.
	m.snap = m.st.Snapshot()
	if m.ready {
		m.viewport.SetContent(m.renderRows())
	}
	return m, nil
}

// moveCursor steps the cursor to the next sentence row in the given
// direction, skipping section headers, and keeps it visible.
func (m *PlayerModel) moveCursor(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].kind == rowSentence {
			m.cursor = i
			break
		}
	}
	if !m.ready {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m PlayerModel) cursorRow() (row, bool) {
	if m.cursor >= 0 && m.cursor < len(m.rows) && m.rows[m.cursor].kind == rowSentence {
		return m.rows[m.cursor], true
	}
	return row{}, false
}

func (m *PlayerModel) seekBy(delta float64) {
	t := m.snap.CurrentTime + delta
	if t < 0 {
		t = 0
	}
	if t > m.snap.Duration {
		t = m.snap.Duration
	}
	m.st.RequestSeek(t)
}

func (m *PlayerModel) copyHighlights() {
	if !m.snap.HasHighlights() {
		m.status = "nothing to copy"
		return
	}
	var lines []string
	for _, si := range m.snap.Highlights {
		if rec, ok := m.snap.Index.DataHash[si]; ok {
			lines = append(lines, rec.Sentence)
		}
	}
	if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
		m.status = "clipboard unavailable"
		return
	}
	m.status = fmt.Sprintf("copied %d highlighted sentences", len(lines))
}

// centerOn scrolls the viewport so the sentence's row sits mid-pane.
func (m *PlayerModel) centerOn(sentenceIndex int) {
	if !m.ready {
		return
	}
	rowIdx, ok := m.rowBySentence[sentenceIndex]
	if !ok {
		return
	}
	m.viewport.SetYOffset(rowIdx - m.viewport.Height/2)
}

// chromeHeight is the number of screen lines used outside the viewport.
func (m PlayerModel) chromeHeight() int {
	// title, seek bar, blank, subtitle, help
	return 5
}

func (m PlayerModel) isHighlighted(sentenceIndex int) bool {
	for _, si := range m.snap.Highlights {
		if si == sentenceIndex {
			return true
		}
	}
	return false
}

func (m PlayerModel) renderRows() string {
	activeIdx, hasActive := m.snap.Index.Timeline[m.snap.CurrentSecond]

	var sb strings.Builder
	for i, r := range m.rows {
		if r.kind == rowSection {
			sb.WriteString(sectionStyle.Render(r.text))
			sb.WriteString("\n")
			continue
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		checkbox := "[ ]"
		style := uncheckedStyle
		if m.isHighlighted(r.sentenceIndex) {
			checkbox = "[x]"
			style = checkedStyle
		}

		line := fmt.Sprintf("%s%s %s  %s",
			cursor, checkbox, timeStyle.Render(r.timeLabel), style.Render(r.text))
		if hasActive && r.sentenceIndex == activeIdx {
			line = activeStyle.Render(fmt.Sprintf("%s%s %s  %s",
				cursor, checkbox, r.timeLabel, r.text))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderSeekBar draws the slider track with highlighted spans colored and a
// thumb at the current position.
func (m PlayerModel) renderSeekBar(width int) string {
	if width < 2 || m.snap.Duration <= 0 {
		return ""
	}

	spans := domain.HighlightSpans(m.snap.Index, m.snap.Highlights, m.snap.Duration)
	perCell := m.snap.Duration / float64(width)

	thumb := int(m.snap.CurrentTime / perCell)
	if thumb >= width {
		thumb = width - 1
	}

	var sb strings.Builder
	for cell := 0; cell < width; cell++ {
		if cell == thumb {
			sb.WriteString(thumbStyle.Render("┃"))
			continue
		}
		t := (float64(cell) + 0.5) * perCell
		if spanCovers(spans, t) {
			sb.WriteString(spanStyle.Render("━"))
		} else {
			sb.WriteString(trackStyle.Render("─"))
		}
	}
	return sb.String()
}

func spanCovers(spans []domain.HighlightSpan, t float64) bool {
	for _, sp := range spans {
		if t >= sp.Start && t < sp.End {
			return true
		}
	}
	return false
}

func (m PlayerModel) View() string {
	if !m.ready {
		return "loading..."
	}

	mode := "paused"
	if m.ctrl.State() == playback.Playing {
		mode = "highlights"
	} else if m.player.Playing() {
		mode = "playing"
	}

	clock := fmt.Sprintf("%s / %s  [%s]",
		FormatClock(m.snap.CurrentTime), FormatClock(m.snap.Duration), mode)
	name := titleStyle.Render(filepath.Base(m.title))
	gap := m.width - lipgloss.Width(name) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	header := name + strings.Repeat(" ", gap) + clock

	subtitle := ""
	if rec, ok := m.snap.ActiveSentence(); ok {
		subtitle = subtitleStyle.Render(rec.Sentence)
	}
	if m.status != "" {
		subtitle = statusStyle.Render(m.status)
	}

	help := helpStyle.Render("space=play/pause  h=highlights  enter=mark  t=jump  ←/→=±10s  c=copy  q=quit")

	return strings.Join([]string{
		header,
		m.renderSeekBar(m.width),
		m.viewport.View(),
		subtitle,
		help,
	}, "\n")
}

// sameSections detects transcript reloads by slice identity, matching how the
// store swaps sections wholesale on load.
func sameSections(a, b []domain.SectionEntry) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// msgSender is the part of tea.Program the feed needs.
type msgSender interface {
	Send(tea.Msg)
}

// uiFeed carries store notifications and scroll requests into the bubbletea
// loop. Callbacks only record the latest value and return; a separate
// goroutine performs the Send. Program.Send blocks until the loop receives,
// and store mutations made inside Update notify on the event-loop goroutine
// itself, so a synchronous Send from a callback would deadlock the loop on
// its own inbox.
type uiFeed struct {
	sender msgSender

	mu        sync.Mutex
	snap      store.Snapshot
	hasSnap   bool
	scrollTo  int
	hasScroll bool

	wake chan struct{}
	quit chan struct{}
	once sync.Once
}

func newUIFeed(sender msgSender) *uiFeed {
	f := &uiFeed{
		sender: sender,
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
	go f.deliver()
	return f
}

// Snapshot records a store notification. Never blocks; intermediate
// snapshots coalesce into the latest one.
func (f *uiFeed) Snapshot(snap store.Snapshot) {
	f.mu.Lock()
	f.snap = snap
	f.hasSnap = true
	f.mu.Unlock()
	f.wakeUp()
}

// ScrollTo records a scroll request. Never blocks; only the newest target
// is delivered.
func (f *uiFeed) ScrollTo(sentenceIndex int) {
	f.mu.Lock()
	f.scrollTo = sentenceIndex
	f.hasScroll = true
	f.mu.Unlock()
	f.wakeUp()
}

func (f *uiFeed) wakeUp() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Close stops the delivery goroutine. Pending values may go undelivered.
func (f *uiFeed) Close() {
	f.once.Do(func() { close(f.quit) })
}

func (f *uiFeed) deliver() {
	for {
		select {
		case <-f.quit:
			return
		case <-f.wake:
		}
		for {
			msg := f.take()
			if msg == nil {
				break
			}
			f.sender.Send(msg)
		}
	}
}

func (f *uiFeed) take() tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasSnap {
		f.hasSnap = false
		return snapshotMsg{snap: f.snap}
	}
	if f.hasScroll {
		f.hasScroll = false
		return scrollMsg{sentenceIndex: f.scrollTo}
	}
	return nil
}

var _ ports.Scroller = (*uiFeed)(nil)

// RunPlayer wires the player screen to a loaded store and runs it until the
// user quits. Every store and follower callback reaches the loop through a
// uiFeed; nothing sends into the program synchronously, so the follower's
// initial scroll cannot stall startup before Run is receiving.
func RunPlayer(st *store.Store, ctrl *playback.Controller, player TransportPlayer, title string) error {
	m := NewPlayerModel(st, ctrl, player, title)
	p := tea.NewProgram(m, tea.WithAltScreen())

	feed := newUIFeed(p)
	defer feed.Close()

	unsubscribe := st.Subscribe(feed.Snapshot)
	defer unsubscribe()

	follower := follow.New(st, feed)
	defer follower.Close()

	_, err := p.Run()
	return err
}
