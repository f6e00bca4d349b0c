// app.go is the top-level Bubble Tea model.
//
// It owns the chrome (header with the backend origin, bordered frame, help
// bar) and forwards everything else to the ask view. On start it pings the
// backend once so the status bar can say whether it is reachable.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/DachengChen/ragask/form"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const appVersion = "0.1.0"

// Pinger checks that the backend is up.
type Pinger interface {
	Ping(ctx context.Context) (string, error)
}

// App is the root Bubble Tea model.
type App struct {
	view   View
	pinger Pinger
	origin string
	log    *zap.Logger

	width     int
	height    int
	statusMsg string
}

// NewApp creates the application around a form controller. pinger may be
// nil, in which case no reachability check is made.
func NewApp(ctrl *form.Controller, pinger Pinger, origin string, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		view:   NewAskView(ctrl),
		pinger: pinger,
		origin: origin,
		log:    log,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.view.Init(), a.ping())
}

func (a *App) ping() tea.Cmd {
	if a.pinger == nil {
		return nil
	}
	p, origin, log := a.pinger, a.origin, a.log
	return func() tea.Msg {
		msg, err := p.Ping(context.Background())
		if err != nil {
			log.Warn("backend ping failed", zap.Error(err))
			return StatusMsg("backend not reachable at " + origin)
		}
		return StatusMsg("backend: " + msg)
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// header(1) + border(2) + helpbar(1) + statusbar(1)
		a.view.SetSize(a.width-2, a.height-5)
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		}
	}

	updated, cmd := a.view.Update(msg)
	a.view = updated
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := a.renderHeader()

	frameHeight := a.height - 5
	if frameHeight < 0 {
		frameHeight = 0
	}
	frame := StyleBorder.
		Width(a.width - 2).
		Height(frameHeight).
		Render(a.view.View())

	return header + "\n" + frame + "\n" + a.renderStatusBar() + "\n" + a.renderHelpBar()
}

// renderHeader draws a simple text bar: name + version + backend origin.
func (a *App) renderHeader() string {
	left := StyleBold.Render("ragask") + StyleDimmed.Render(" v"+appVersion)
	right := StyleDimmed.Render(a.origin)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (a *App) renderStatusBar() string {
	return StyleStatusBar.Width(a.width).Render(a.statusMsg)
}

func (a *App) renderHelpBar() string {
	help := append(a.view.ShortHelp(), KeyBinding{Key: "Ctrl+C", Desc: "quit"})
	parts := make([]string, 0, len(help))
	for _, h := range help {
		parts = append(parts, fmt.Sprintf("%s %s", StyleHelpKey.Render(h.Key), StyleHelpDesc.Render(h.Desc)))
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Render(strings.Join(parts, StyleDimmed.Render("  │  ")))
}
