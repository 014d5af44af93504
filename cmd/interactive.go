package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"prtgctl/data/model"
	"prtgctl/prtg"
	"prtgctl/prtgapi"
)

type browseView int

const (
	viewSensors browseView = iota
	viewChannels
)

type browseModel struct {
	ctx      context.Context
	client   *prtg.Client
	group    string
	view     browseView
	sensors  []model.Sensor
	channels []model.Channel
	cursor   int
	sensor   *model.Sensor
	status   string
	loading  bool
	quitting bool
	err      error
}

type sensorsMsg []model.Sensor
type channelsMsg []model.Channel
type errMsg struct{ err error }

func (m browseModel) loadSensors() tea.Cmd {
	return func() tea.Msg {
		var (
			sensors []model.Sensor
			err     error
		)
		if m.group != "" {
			sensors, err = m.client.GetSensorsInGroup(m.ctx, m.group)
		} else {
			sensors, err = m.client.GetSensors(m.ctx, prtgapi.Filter{})
		}
		if err != nil {
			return errMsg{err}
		}
		return sensorsMsg(sensors)
	}
}

func (m browseModel) loadChannels(sensorID int) tea.Cmd {
	return func() tea.Msg {
		chans, err := m.client.GetChannels(m.ctx, sensorID, true)
		if err != nil {
			return errMsg{err}
		}
		return channelsMsg(chans)
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.loadSensors()
}

func (m browseModel) rows() int {
	if m.view == viewChannels {
		return len(m.channels)
	}
	return len(m.sensors)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.rows()-1 {
				m.cursor++
			}

		case "enter":
			if m.view == viewSensors && !m.loading && len(m.sensors) > 0 {
				s := m.sensors[m.cursor]
				m.sensor = &s
				m.loading = true
				m.status = "Loading channels of " + s.Name + "..."
				return m, m.loadChannels(s.ID)
			}

		case "esc", "backspace":
			if m.view == viewChannels {
				m.view = viewSensors
				m.cursor = 0
				m.status = fmt.Sprintf("%d sensors", len(m.sensors))
			}

		case "r":
			if !m.loading {
				m.loading = true
				m.view = viewSensors
				m.cursor = 0
				m.status = "Refreshing..."
				return m, m.loadSensors()
			}
		}

	case sensorsMsg:
		m.sensors = msg
		m.loading = false
		m.status = fmt.Sprintf("%d sensors", len(msg))

	case channelsMsg:
		m.channels = msg
		m.loading = false
		m.view = viewChannels
		m.cursor = 0
		m.status = fmt.Sprintf("%d channels", len(msg))

	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF00")).
		Padding(1, 0)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFF00"))

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF00"))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Padding(1, 0)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#00FF00")).
		Padding(1, 2)

	var lines []string
	title := "PRTG Sensors"
	if m.view == viewChannels && m.sensor != nil {
		title = fmt.Sprintf("Channels of %s (%d)", m.sensor.Name, m.sensor.ID)
		for i, ch := range m.channels {
			lines = append(lines, m.mark(i, selectedStyle, fmt.Sprintf("%4d  %-30s %-14s %s",
				ch.ID, ch.Name, ch.LastValue, limitSummary(ch))))
		}
	} else {
		if m.group != "" {
			title += " in " + m.group
		}
		for i, s := range m.sensors {
			lines = append(lines, m.mark(i, selectedStyle, fmt.Sprintf("%6d  %-30s %-20s %s",
				s.ID, s.Name, s.Device, s.Status)))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "(nothing to show)")
	}

	controls := `Controls:
  ↑/K ↓/J - Move
  ENTER   - Show channels
  ESC     - Back to sensors
  R       - Refresh
  Q       - Quit`

	return titleStyle.Render(title) + "\n" +
		boxStyle.Render(strings.Join(lines, "\n")) + "\n" +
		infoStyle.Render(m.status) + "\n" +
		helpStyle.Render(controls)
}

func (m browseModel) mark(i int, style lipgloss.Style, line string) string {
	if i == m.cursor {
		return style.Render("> " + line)
	}
	return "  " + line
}

func limitSummary(ch model.Channel) string {
	if !ch.LimitsEnabled {
		return "limits off"
	}
	var parts []string
	for _, l := range []struct {
		name string
		v    *float64
	}{
		{"max err", ch.UpperErrorLimit},
		{"min err", ch.LowerErrorLimit},
		{"max warn", ch.UpperWarningLimit},
		{"min warn", ch.LowerWarningLimit},
	} {
		if l.v != nil {
			parts = append(parts, l.name+" "+strconv.FormatFloat(*l.v, 'f', -1, 64))
		}
	}
	return strings.Join(parts, ", ")
}

var browseGroup string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse sensors and channels interactively",
	Args:  cobra.NoArgs,
	RunE: withSession(func(ctx context.Context, s *session, args []string) error {
		m := browseModel{
			ctx:     ctx,
			client:  s.client,
			group:   browseGroup,
			status:  "Loading sensors...",
			loading: true,
		}
		final, err := tea.NewProgram(m).Run()
		if err != nil {
			return err
		}
		if fm, ok := final.(browseModel); ok && fm.err != nil {
			return fm.err
		}
		return nil
	}),
}

func init() {
	browseCmd.Flags().StringVar(&browseGroup, "group", "", "only sensors in this group and its subgroups")
	rootCmd.AddCommand(browseCmd)
}
