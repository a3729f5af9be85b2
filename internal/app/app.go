// Package app wires the panels together: the virtualized file tree,
// the status bar, the cache-sweep timer, the background selection
// pump, and the file watcher feeding external-change invalidations.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/benju66/ExplorerPro-sub010/internal/components/filetree"
	"github.com/benju66/ExplorerPro-sub010/internal/components/statusbar"
	"github.com/benju66/ExplorerPro-sub010/internal/config"
	"github.com/benju66/ExplorerPro-sub010/internal/state"
	"github.com/benju66/ExplorerPro-sub010/internal/theme"
	"github.com/benju66/ExplorerPro-sub010/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Version is set at build time via ldflags.
var Version = "dev"

type (
	// sweepTickMsg fires the periodic cache sweep.
	sweepTickMsg time.Time

	// watchBatchMsg carries a debounced batch of changed paths.
	watchBatchMsg watcher.Batch

	// statusClearMsg clears a transient status message.
	statusClearMsg struct{}
)

// Model is the root application model.
type Model struct {
	fileTree  filetree.Model
	statusBar statusbar.Model

	theme *theme.Theme
	cfg   config.Config
	st    state.State
	watch *watcher.Watcher

	width  int
	height int
	ready  bool

	initCmd tea.Cmd
}

// New creates the application rooted at dir ("" = last session's root,
// falling back to the working directory).
func New(dir string) Model {
	cfg := config.Discover()
	st := state.Load()

	th := theme.DefaultTheme()
	th.UseNerdFonts = cfg.UseNerdFonts

	ft := filetree.New(filetree.Options{
		Theme:           th,
		ShowHidden:      st.ShowHidden,
		ChunkSize:       cfg.ChunkSize,
		CacheMaxEntries: cfg.CacheMaxEntries,
		Expanded:        st.Expanded,
	})
	ft = ft.Focus()

	if dir == "" {
		dir = st.LastRoot
	}
	if dir == "" {
		dir, _ = os.Getwd()
	}

	var initCmd tea.Cmd
	if cmd, err := ft.SetRoot(dir); err == nil {
		initCmd = cmd
	} else if cwd, cwdErr := os.Getwd(); cwdErr == nil && cwd != dir {
		if cmd, err := ft.SetRoot(cwd); err == nil {
			initCmd = cmd
		}
	}

	w, err := watcher.New(0)
	if err != nil {
		// No watcher just means no proactive invalidation; refreshes
		// still work on demand.
		w = nil
	}

	return Model{
		fileTree:  ft,
		statusBar: statusbar.New(ft.Service()),
		theme:     th,
		cfg:       cfg,
		st:        st,
		watch:     w,
		initCmd:   initCmd,
	}
}

// Init starts the initial load, the sweep timer, and the watcher pump.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initCmd, m.sweepTick()}
	if m.watch != nil {
		cmds = append(cmds, m.waitBatch())
	}
	return tea.Batch(cmds...)
}

// Update routes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// One line for the status bar, two columns/rows for the panel
		// border.
		m.fileTree = m.fileTree.SetSize(msg.Width-2, msg.Height-3)
		m.statusBar = m.statusBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

	case sweepTickMsg:
		m.fileTree.Service().SweepNow()
		return m, m.sweepTick()

	case watchBatchMsg:
		return m.handleWatchBatch(msg)

	case filetree.LoadedMsg:
		if m.watch != nil && msg.Err == nil {
			// Newly loaded directories join the watch set; errors are
			// ignorable (no proactive invalidation for that dir).
			_ = m.watch.Add(msg.Path)
		}

	case filetree.OpenMsg:
		m.statusBar = m.statusBar.SetMessage(msg.Path)
		var cmd tea.Cmd
		m.fileTree, cmd = m.fileTree.Update(msg)
		return m, tea.Batch(cmd, clearStatusLater())

	case statusClearMsg:
		m.statusBar = m.statusBar.SetMessage("")
		return m, nil
	}

	var cmd tea.Cmd
	m.fileTree, cmd = m.fileTree.Update(msg)
	return m, cmd
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m.quit(), true
	}
	if m.fileTree.Typing() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		return m.quit(), true

	case "y":
		paths := m.fileTree.Service().SelectedPaths()
		if len(paths) == 0 {
			return nil, true
		}
		if err := clipboard.WriteAll(strings.Join(paths, "\n")); err != nil {
			m.statusBar = m.statusBar.SetMessage("clipboard unavailable")
		} else {
			m.statusBar = m.statusBar.SetMessage(fmt.Sprintf("copied %d paths", len(paths)))
		}
		return clearStatusLater(), true

	case ".":
		m.fileTree.SetShowHidden(!m.fileTree.ShowHidden())
		return nil, true
	}

	return nil, false
}

// handleWatchBatch turns a debounced change batch into directory
// refreshes. The reload reconciles vanished nodes out of the engine,
// and the follow-up sweep drops whatever cache entries died with them.
func (m Model) handleWatchBatch(msg watchBatchMsg) (tea.Model, tea.Cmd) {
	dirs := make(map[string]struct{})
	for _, p := range msg.Paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}

	var cmds []tea.Cmd
	for dir := range dirs {
		if cmd := m.fileTree.RefreshDir(dir); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.fileTree.Service().SweepNow()

	cmds = append(cmds, m.waitBatch())
	return m, tea.Batch(cmds...)
}

func (m Model) quit() tea.Cmd {
	m.st.ShowHidden = m.fileTree.ShowHidden()
	m.st.LastRoot = m.fileTree.Root()
	// Expanded is the same map the tree has been updating all along.
	_ = state.Save(m.st)

	if m.watch != nil {
		_ = m.watch.Close()
	}
	return tea.Quit
}

func (m Model) sweepTick() tea.Cmd {
	return tea.Tick(m.cfg.SweepInterval, func(t time.Time) tea.Msg {
		return sweepTickMsg(t)
	})
}

func (m Model) waitBatch() tea.Cmd {
	return func() tea.Msg {
		b, ok := <-m.watch.Batches()
		if !ok {
			return nil
		}
		return watchBatchMsg(b)
	}
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// View composes the bordered tree panel over the status bar.
func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Dim).
		Width(m.width - 2).
		Height(m.height - 3).
		Render(m.fileTree.View())

	return lipgloss.JoinVertical(lipgloss.Left, panel, m.statusBar.View())
}
