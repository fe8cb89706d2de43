package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/gilleon/book-journal/internal/api"
	"github.com/gilleon/book-journal/internal/controller"
	"github.com/gilleon/book-journal/internal/identity"
	"github.com/gilleon/book-journal/internal/validation"
)

// View represents the current active view.
type View int

const (
	ViewBooks View = iota
	ViewReaders
	ViewDetail
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Books    *controller.Resource[api.Book, controller.BookForm]
	Readers  *controller.Resource[api.Reader, controller.ReaderForm]
	Session  *controller.Session
	Resolver *identity.Resolver
	Reader   *api.Reader // nil triggers the onboarding flow
	Logger   zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	books    *controller.Resource[api.Book, controller.BookForm]
	readers  *controller.Resource[api.Reader, controller.ReaderForm]
	session  *controller.Session
	resolver *identity.Resolver
	validate *validation.Validator
	log      zerolog.Logger

	theme  Theme
	styles Styles

	currentView View
	width       int
	height      int
	ready       bool

	reader *api.Reader

	booksSnap   controller.Snapshot[api.Book, controller.BookForm]
	readersSnap controller.Snapshot[api.Reader, controller.ReaderForm]
	sessionSnap controller.SessionSnapshot

	bookCursor   int
	readerCursor int
	genreFilter  string

	detailBook api.Book

	form    formState
	onboard onboardState
	finish  finishState
}

// New creates the root Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctx:      ctx,
		books:    opts.Books,
		readers:  opts.Readers,
		session:  opts.Session,
		resolver: opts.Resolver,
		validate: validation.New(),
		log:      opts.Logger,
		theme:    DefaultTheme,
		reader:   opts.Reader,
	}
	m.styles = m.theme.Styles()
	m.booksSnap = m.books.Snapshot()
	m.readersSnap = m.readers.Snapshot()
	if m.reader == nil {
		m.onboard = newOnboardState()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.fetchBooksCmd(), m.fetchReadersCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case booksRefreshedMsg:
		m.booksSnap = m.books.Snapshot()
		m.clampCursors()
		m.syncForm(formBook, m.booksSnap.ShowModal, m.booksSnap.Err)
		return m, nil

	case readersRefreshedMsg:
		m.readersSnap = m.readers.Snapshot()
		m.clampCursors()
		m.syncForm(formReader, m.readersSnap.ShowModal, m.readersSnap.Err)
		return m, nil

	case sessionRefreshedMsg:
		m.sessionSnap = m.session.Snapshot()
		if msg.started && msg.err == nil {
			m.finish.note = "Status updated to In Progress"
		}
		if msg.finished && msg.err == nil {
			m.finish.note = "Status updated to Finished"
		}
		if msg.err != nil {
			m.finish.err = msg.err.Error()
		}
		return m, nil

	case identityResolvedMsg:
		return m.handleIdentityResolved(msg)
	}

	if m.onboard.active {
		var cmd tea.Cmd
		m.onboard, cmd = m.onboard.updateInputs(msg)
		return m, cmd
	}
	if m.form.active {
		var cmd tea.Cmd
		m.form, cmd = m.form.updateInputs(msg)
		return m, cmd
	}
	if m.currentView == ViewDetail {
		var cmd tea.Cmd
		m.finish, cmd = m.finish.updateInputs(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.onboard.active {
		return m.renderOnboard()
	}
	if m.form.active {
		return m.renderForm()
	}
	if snap := m.currentResource(); snap != nil && snap.hasConfirmDelete() {
		return m.renderConfirmDelete()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.onboard.active {
		return m.handleOnboardKey(msg)
	}
	if m.form.active {
		return m.handleFormKey(msg)
	}
	if snap := m.currentResource(); snap != nil && snap.hasConfirmDelete() {
		return m.handleConfirmDeleteKey(msg)
	}

	// The finish form owns the keyboard while its inputs are visible.
	if m.currentView == ViewDetail && m.sessionSnap.CanFinishReading() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.currentView = ViewBooks
			m.finish = finishState{}
			return m, nil
		}
		return m.handleDetailKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "b", "1":
		m.currentView = ViewBooks
		return m, nil

	case "r", "2":
		m.currentView = ViewReaders
		return m, nil

	case "R":
		switch m.currentView {
		case ViewReaders:
			return m, m.fetchReadersCmd()
		case ViewDetail:
			return m, m.reloadSessionCmd()
		default:
			return m, m.fetchBooksCmd()
		}

	case "L":
		return m.handleLogout()

	case "esc":
		if m.currentView == ViewDetail {
			m.currentView = ViewBooks
			m.finish = finishState{}
		}
		return m, nil
	}

	switch m.currentView {
	case ViewBooks:
		return m.handleBooksKey(msg)
	case ViewReaders:
		return m.handleReadersKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	if err := m.resolver.Logout(); err != nil {
		m.log.Error().Err(err).Msg("logout failed")
		return m, nil
	}
	m.reader = nil
	m.currentView = ViewBooks
	m.onboard = newOnboardState()
	return m, nil
}

func (m Model) handleIdentityResolved(msg identityResolvedMsg) (tea.Model, tea.Cmd) {
	m.onboard.busy = false
	if msg.err != nil {
		m.onboard.err = msg.err.Error()
		return m, nil
	}
	m.reader = msg.reader
	m.onboard = onboardState{}
	return m, nil
}

// currentResource returns the list snapshot backing the active view, nil for
// the detail view.
func (m *Model) currentResource() *resourceView {
	switch m.currentView {
	case ViewBooks:
		return &resourceView{
			err:           m.booksSnap.Err,
			loading:       m.booksSnap.Loading,
			confirmDelete: m.booksSnap.HasConfirmDelete,
		}
	case ViewReaders:
		return &resourceView{
			err:           m.readersSnap.Err,
			loading:       m.readersSnap.Loading,
			confirmDelete: m.readersSnap.HasConfirmDelete,
		}
	}
	return nil
}

// resourceView is the slice of resource state the frame chrome needs.
type resourceView struct {
	err           string
	loading       bool
	confirmDelete bool
}

func (v *resourceView) hasConfirmDelete() bool {
	return v != nil && v.confirmDelete
}

// syncForm closes the modal inputs once the controller drops the modal, and
// surfaces the submit error while it stays open.
func (m *Model) syncForm(kind formKind, showModal bool, errText string) {
	if !m.form.active || m.form.kind != kind {
		return
	}
	if !showModal {
		m.form = formState{}
		return
	}
	m.form.err = errText
}

func (m *Model) clampCursors() {
	if books := m.visibleBooks(); m.bookCursor >= len(books) {
		m.bookCursor = max(0, len(books)-1)
	}
	if m.readerCursor >= len(m.readersSnap.Items) {
		m.readerCursor = max(0, len(m.readersSnap.Items)-1)
	}
}

// Messages

type booksRefreshedMsg struct{}

type readersRefreshedMsg struct{}

type sessionRefreshedMsg struct {
	started  bool
	finished bool
	err      error
}

type identityResolvedMsg struct {
	reader *api.Reader
	err    error
}

// Commands

func (m Model) fetchBooksCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.books.FetchAll(m.ctx)
		return booksRefreshedMsg{}
	}
}

func (m Model) fetchReadersCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.readers.FetchAll(m.ctx)
		return readersRefreshedMsg{}
	}
}

func (m Model) submitBooksCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.books.Submit(m.ctx)
		return booksRefreshedMsg{}
	}
}

func (m Model) submitReadersCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.readers.Submit(m.ctx)
		return readersRefreshedMsg{}
	}
}

func (m Model) confirmDeleteBooksCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.books.ConfirmDelete(m.ctx)
		return booksRefreshedMsg{}
	}
}

func (m Model) confirmDeleteReadersCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.readers.ConfirmDelete(m.ctx)
		return readersRefreshedMsg{}
	}
}

func (m Model) loadSessionCmd(readerID, bookID int64) tea.Cmd {
	return func() tea.Msg {
		m.session.Load(m.ctx, readerID, bookID)
		return sessionRefreshedMsg{}
	}
}

func (m Model) reloadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		m.session.FetchReview(m.ctx)
		m.session.FetchReactions(m.ctx)
		return sessionRefreshedMsg{}
	}
}

func (m Model) startReadingCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.session.StartReading(m.ctx)
		return sessionRefreshedMsg{started: true, err: err}
	}
}

func (m Model) finishReadingCmd(rating int, emoji, comment string) tea.Cmd {
	return func() tea.Msg {
		err := m.session.FinishReading(m.ctx, rating, emoji, comment)
		return sessionRefreshedMsg{finished: true, err: err}
	}
}

func (m Model) resolveIdentityCmd(name, email string) tea.Cmd {
	return func() tea.Msg {
		reader, err := m.resolver.Resolve(m.ctx, name, email)
		return identityResolvedMsg{reader: reader, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
