// Package filetree implements the virtualized tree panel. Only the
// rows inside the viewport are materialized, as recycled render.Pool
// rows; selection state is owned by the selection engine and applied to
// rows in two tiers (on-screen synchronously, off-screen in cooperative
// chunks driven by SelChunkMsg).
package filetree

import (
	"github.com/benju66/ExplorerPro-sub010/internal/components"
	"github.com/benju66/ExplorerPro-sub010/internal/render"
	"github.com/benju66/ExplorerPro-sub010/internal/selection"
	"github.com/benju66/ExplorerPro-sub010/internal/theme"
	"github.com/benju66/ExplorerPro-sub010/internal/tree"
	"github.com/benju66/ExplorerPro-sub010/internal/viscache"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a new file tree panel.
type Options struct {
	Theme           *theme.Theme
	ShowHidden      bool
	ChunkSize       int
	CacheMaxEntries int
	// Expanded carries persisted expand/collapse preferences; the map
	// is shared with the caller so it can be saved on exit.
	Expanded map[string]bool
}

// engineEnv is the mutable state the selection engine observes through
// interfaces. It lives behind a pointer so engine closures keep seeing
// the current viewport and index as the (value-typed) Model evolves.
type engineEnv struct {
	top    int // first visible flat index
	height int // rows on screen
	pool   *render.Pool
	index  *tree.Index
}

// Exists implements selection.NodeSource.
func (e *engineEnv) Exists(path string) bool {
	return e.index != nil && e.index.Exists(path)
}

// Lookup implements selection.NodeSource.
func (e *engineEnv) Lookup(path string) *tree.Node {
	if e.index == nil {
		return nil
	}
	return e.index.Lookup(path)
}

// Resolve implements selection.Resolver: the full (uncached) search for
// a node's representation is a scan of the live pool, bounded by
// viewport height.
func (e *engineEnv) Resolve(path string) *render.RowView {
	return e.pool.Find(path)
}

func (e *engineEnv) viewport() selection.Viewport {
	return selection.Viewport{Top: e.top, Height: e.height}
}

// Model is the file tree component.
type Model struct {
	components.Base

	theme *theme.Theme
	keys  KeyMap

	root    *tree.Node
	visible []*tree.Node
	cursor  int

	showHidden bool
	loading    map[string]bool
	expanded   map[string]bool

	env   *engineEnv
	cache *viscache.Cache
	svc   *selection.Service

	// anchor is the range-selection anchor path ("" = none).
	anchor string

	searching   bool
	searchInput textinput.Model
	searchQuery string
	matchCount  int

	patterning       bool
	patternInput     textinput.Model
	patternRecursive bool
	patternAdditive  bool
}

// New creates a file tree panel with its selection engine attached.
func New(opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = theme.DefaultTheme()
	}
	if opts.Expanded == nil {
		opts.Expanded = make(map[string]bool)
	}

	si := textinput.New()
	si.Placeholder = "Search files..."
	si.CharLimit = 100

	pi := textinput.New()
	pi.Placeholder = "*.txt"
	pi.CharLimit = 100

	env := &engineEnv{pool: render.NewPool(0)}
	metrics := selection.NewMetrics()
	cache := viscache.New(opts.CacheMaxEntries, metrics)
	svc := selection.NewService(cache, env, env.viewport, env, metrics, opts.ChunkSize)

	return Model{
		theme:        opts.Theme,
		keys:         DefaultKeyMap(),
		showHidden:   opts.ShowHidden,
		loading:      make(map[string]bool),
		expanded:     opts.Expanded,
		env:          env,
		cache:        cache,
		svc:          svc,
		searchInput:  si,
		patternInput: pi,
	}
}

// SetRoot points the panel at a directory, resetting the engine state
// (the old container's cache and selection die with it).
func (m *Model) SetRoot(path string) (tea.Cmd, error) {
	root, err := tree.NewRoot(path)
	if err != nil {
		return nil, err
	}

	m.root = root
	m.cursor = 0
	m.env.top = 0
	m.env.index = tree.NewIndex(root)
	m.anchor = ""
	m.svc.Reset()
	m.rebuildVisible()

	return m.loadChildren(root.Path), nil
}

// Service exposes the selection engine to the app shell and status bar.
func (m Model) Service() *selection.Service { return m.svc }

// Root returns the root path, or "".
func (m Model) Root() string {
	if m.root == nil {
		return ""
	}
	return m.root.Path
}

// CursorNode returns the node under the cursor, or nil.
func (m Model) CursorNode() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

// VisibleCount returns the number of nodes in the flat order.
func (m Model) VisibleCount() int { return len(m.visible) }

// Init loads the root's children.
func (m Model) Init() tea.Cmd {
	if m.root == nil {
		return nil
	}
	return m.loadChildren(m.root.Path)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		return m.handleLoaded(msg)

	case SelChunkMsg:
		// One background chunk per message; re-queueing yields to
		// pending input and render messages in between.
		if !m.svc.ProcessChunk(msg.Gen) {
			return m, chunkCmd(msg.Gen)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.Focused() {
			return m, nil
		}
		if m.searching {
			return m.handleSearchKey(msg)
		}
		if m.patterning {
			return m.handlePatternKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.layoutRows()
		return m, textinput.Blink

	case "esc":
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.rebuildVisible()
			m.layoutRows()
			return m, nil
		}
		// Clear the selection.
		m.anchor = ""
		return m, m.request(selection.Request{Shape: selection.ShapeAll})
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.env.height / 2)

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.env.height / 2)

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.env.top = 0

	case key.Matches(msg, m.keys.End):
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
			m.ensureVisible()
		}

	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Right):
		return m.handleActivate()

	case key.Matches(msg, m.keys.Left):
		return m.handleBack()

	case key.Matches(msg, m.keys.Toggle):
		return m.handleToggleSelect()

	case key.Matches(msg, m.keys.RangeExtend):
		return m.handleRangeExtend()

	case key.Matches(msg, m.keys.SelectAll):
		return m, m.request(selection.Request{
			Shape: selection.ShapeAll,
			Paths: m.visiblePaths(),
		})

	case key.Matches(msg, m.keys.Pattern):
		m.patterning = true
		m.patternInput.SetValue("")
		m.patternRecursive = false
		m.patternAdditive = false
		m.patternInput.Focus()
		m.layoutRows()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.moveCursor(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.moveCursor(3)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		clicked := m.env.top + msg.Y - 1 // border line above the rows
		if clicked >= 0 && clicked < len(m.visible) {
			m.cursor = clicked
			node := m.visible[m.cursor]
			m.anchor = node.Path
			return m, m.request(selection.Request{
				Shape:  selection.ShapeSingle,
				Target: node.Path,
			})
		}
	}
	return m, nil
}

// handleActivate opens files and expands/collapses directories.
func (m Model) handleActivate() (Model, tea.Cmd) {
	node := m.CursorNode()
	if node == nil {
		return m, nil
	}

	if node.IsDir {
		return m.toggleDir(node)
	}

	path := node.Path
	return m, func() tea.Msg {
		return OpenMsg{Path: path}
	}
}

func (m Model) toggleDir(node *tree.Node) (Model, tea.Cmd) {
	if node.Expanded {
		node.Collapse()
		m.expanded[node.Path] = false
		m.rebuildVisible()
		return m, nil
	}

	node.Expanded = true
	m.expanded[node.Path] = true
	if !node.Loaded && !m.loading[node.Path] {
		m.loading[node.Path] = true
		m.rebuildVisible()
		return m, m.loadChildren(node.Path)
	}
	m.rebuildVisible()
	return m, nil
}

func (m Model) handleBack() (Model, tea.Cmd) {
	node := m.CursorNode()
	if node == nil {
		return m, nil
	}

	if node.IsDir && node.Expanded {
		node.Collapse()
		m.expanded[node.Path] = false
		m.rebuildVisible()
		return m, nil
	}

	if node.Parent != nil && node.Parent != m.root {
		for i, n := range m.visible {
			if n == node.Parent {
				m.cursor = i
				m.ensureVisible()
				break
			}
		}
	}
	return m, nil
}

func (m Model) handleToggleSelect() (Model, tea.Cmd) {
	node := m.CursorNode()
	if node == nil {
		return m, nil
	}
	m.anchor = node.Path
	return m, m.request(selection.Request{
		Shape:  selection.ShapeToggle,
		Target: node.Path,
	})
}

func (m Model) handleRangeExtend() (Model, tea.Cmd) {
	node := m.CursorNode()
	if node == nil {
		return m, nil
	}

	if m.anchor == "" {
		m.anchor = node.Path
		return m, m.request(selection.Request{
			Shape:  selection.ShapeSingle,
			Target: node.Path,
		})
	}

	return m, m.request(selection.Request{
		Shape:  selection.ShapeRange,
		Order:  m.visiblePaths(),
		Anchor: m.anchor,
		Focus:  node.Path,
	})
}

// request hands a selection request to the engine. The visible tier is
// applied before this returns; any off-screen remainder is drained by
// the chunk pump.
func (m *Model) request(req selection.Request) tea.Cmd {
	gen, err := m.svc.RequestSelection(req)
	if err != nil {
		// Malformed requests are bugs in the caller, not user input;
		// nothing sensible to show.
		return nil
	}
	if m.svc.Pending() > 0 {
		return chunkCmd(gen)
	}
	return nil
}

func chunkCmd(gen uint64) tea.Cmd {
	return func() tea.Msg {
		return SelChunkMsg{Gen: gen}
	}
}

// handleLoaded reconciles freshly read children into the tree. Existing
// child nodes are kept (preserving expansion and deeper subtrees);
// vanished ones are invalidated in the engine so no stale selection or
// cache entry survives them.
func (m Model) handleLoaded(msg LoadedMsg) (Model, tea.Cmd) {
	delete(m.loading, msg.Path)

	if msg.Err != nil || m.root == nil || m.env.index == nil {
		return m, nil
	}

	node := m.env.index.Lookup(msg.Path)
	if node == nil {
		return m, nil
	}

	fresh := make(map[string]*tree.Node, len(msg.Children))
	for _, c := range msg.Children {
		fresh[c.Path] = c
	}

	// Drop vanished children and everything under them.
	for _, old := range node.Children {
		if _, still := fresh[old.Path]; still {
			continue
		}
		old.Walk(func(n *tree.Node) {
			m.svc.InvalidateNode(n.Path)
		})
		m.env.index.RemoveSubtree(old)
	}

	prev := make(map[string]*tree.Node, len(node.Children))
	for _, old := range node.Children {
		prev[old.Path] = old
	}

	merged := make([]*tree.Node, 0, len(msg.Children))
	var cmds []tea.Cmd
	for _, c := range msg.Children {
		if old, ok := prev[c.Path]; ok && old.IsDir == c.IsDir {
			old.Size = c.Size
			old.ModTime = c.ModTime
			merged = append(merged, old)
			continue
		}
		if c.IsDir && m.expanded[c.Path] {
			c.Expanded = true
			if !m.loading[c.Path] {
				m.loading[c.Path] = true
				cmds = append(cmds, m.loadChildren(c.Path))
			}
		}
		merged = append(merged, c)
		m.env.index.Add(c)
	}

	node.AttachChildren(merged)
	m.rebuildVisible()
	return m, tea.Batch(cmds...)
}

func (m Model) loadChildren(path string) tea.Cmd {
	return func() tea.Msg {
		children, err := tree.ReadChildren(path)
		if err != nil {
			return LoadedMsg{Path: path, Err: err}
		}
		return LoadedMsg{Path: path, Children: children}
	}
}

// RefreshDir reloads a directory after an external change. Files map to
// their parent directory.
func (m Model) RefreshDir(path string) tea.Cmd {
	if m.env.index == nil {
		return nil
	}

	node := m.env.index.Lookup(path)
	if node == nil {
		return nil
	}
	if !node.IsDir {
		node = node.Parent
	}
	if node == nil || !node.Loaded {
		return nil
	}
	return m.loadChildren(node.Path)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	if m.env.height <= 0 {
		return
	}
	if m.cursor < m.env.top {
		m.env.top = m.cursor
	}
	if m.cursor >= m.env.top+m.env.height {
		m.env.top = m.cursor - m.env.height + 1
	}
	if m.env.top < 0 {
		m.env.top = 0
	}
}

func (m *Model) rebuildVisible() {
	if m.root == nil {
		m.visible = nil
		return
	}

	all := m.root.Flatten(m.showHidden)
	if m.searchQuery != "" {
		m.visible, m.matchCount = filterNodes(all, m.searchQuery)
	} else {
		m.visible = all
		m.matchCount = 0
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m Model) visiblePaths() []string {
	paths := make([]string, len(m.visible))
	for i, n := range m.visible {
		paths[i] = n.Path
	}
	return paths
}

// SetShowHidden toggles dotfile visibility.
func (m *Model) SetShowHidden(show bool) {
	m.showHidden = show
	m.rebuildVisible()
}

// ShowHidden reports whether dotfiles are shown.
func (m Model) ShowHidden() bool { return m.showHidden }

// Typing reports whether a text prompt (search or pattern) is eating
// keystrokes, so the app shell can leave plain keys alone.
func (m Model) Typing() bool { return m.searching || m.patterning }

// Focus gives focus to this component.
func (m Model) Focus() Model {
	m.Base.Focus()
	return m
}

// Blur removes focus from this component.
func (m Model) Blur() Model {
	m.Base.Blur()
	return m
}

// SetSize updates the component's dimensions and resizes the row pool
// to the new viewport.
func (m Model) SetSize(width, height int) Model {
	m.Base.SetSize(width, height)
	m.layoutRows()
	m.ensureVisible()
	return m
}

// layoutRows recomputes how many rows fit and keeps the pool and
// viewport in sync. Shrinking the pool releases rows, letting their
// cache entries die on the next sweep.
func (m *Model) layoutRows() {
	_, h := m.Size()
	rows := h
	if m.searching || m.searchQuery != "" || m.patterning {
		rows--
	}
	if rows < 0 {
		rows = 0
	}
	m.env.height = rows
	m.env.pool.Resize(rows)
}
