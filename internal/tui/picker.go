// Package tui provides terminal user interface components for phoenixgen
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-phoenixgen/pkg/model"
)

// ErrNoDevices is returned by RunPicker when there is nothing to pick.
var ErrNoDevices = errors.New("tui: no devices available")

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionRender
	ActionEdit
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Device model.Device
}

// deviceItem implements list.Item for device display
type deviceItem struct {
	device model.Device
}

func (i deviceItem) Title() string {
	if i.device.Label != "" && i.device.Label != i.device.Key {
		return fmt.Sprintf("%s (%s)", i.device.Label, i.device.Key)
	}
	return i.device.Key
}

func (i deviceItem) Description() string {
	fields := 0
	for _, section := range i.device.Sections {
		fields += len(section.Fields)
	}
	desc := fmt.Sprintf("%s | %s | %s",
		i.device.RootName,
		plural(len(i.device.Sections), "section"),
		plural(fields, "field"),
	)
	if i.device.Summary != "" {
		desc += " | " + truncate(i.device.Summary, 40)
	}
	return desc
}

func (i deviceItem) FilterValue() string {
	return i.device.Key + " " + i.device.Label
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)
)

// Model is the bubbletea model for the device picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new device picker
func NewPicker(devices []model.Device) Model {
	items := make([]list.Item, len(devices))
	for i, device := range devices {
		items[i] = deviceItem{device: device}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "Phoenix Config - Select Device"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(deviceItem); ok {
				return m.finish(PickerResult{Action: ActionRender, Device: item.device})
			}

		case "e":
			if item, ok := m.list.SelectedItem().(deviceItem); ok {
				return m.finish(PickerResult{Action: ActionEdit, Device: item.device})
			}

		case "q", "esc", "ctrl+c":
			return m.finish(PickerResult{Action: ActionQuit})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) finish(result PickerResult) (tea.Model, tea.Cmd) {
	m.result = result
	m.quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Render defaults  [e] Edit  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive device picker
func RunPicker(devices []model.Device) (PickerResult, error) {
	if len(devices) == 0 {
		return PickerResult{}, ErrNoDevices
	}
	if len(devices) == 1 {
		return PickerResult{Action: ActionRender, Device: devices[0]}, nil
	}

	m := NewPicker(devices)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker lists devices as plain text for non-interactive terminals
func SimplePicker(devices []model.Device) string {
	var sb strings.Builder

	sb.WriteString("Phoenix Config - Devices\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(devices) == 0 {
		sb.WriteString("No devices found.\n")
		sb.WriteString("Add definitions with: phoenixgen --catalog <dir>\n")
		return sb.String()
	}

	for i, device := range devices {
		item := deviceItem{device: device}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.Title()))
		sb.WriteString(fmt.Sprintf("   %s\n\n", item.Description()))
	}
	sb.WriteString("Render one with: phoenixgen render -d <device>\n")

	return sb.String()
}
