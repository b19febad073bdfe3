package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/helmward/helmboard/pkg/pipeline"
	"github.com/helmward/helmboard/pkg/store"
	"github.com/helmward/helmboard/pkg/view"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	interval time.Duration // polling interval
}

// watchCommand creates the watch command: a live terminal status table that
// re-reads the records file on an interval, so edits made by another
// process show up on the next poll.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{interval: 2 * time.Second}

	cmd := &cobra.Command{
		Use:   "watch [records.json]",
		Short: "Watch subsystem health in a live terminal table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			m := newWatchModel(args[0], runner, opts.interval)
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", opts.interval, "polling interval")

	return cmd
}

// =============================================================================
// watchModel - Live status table
// =============================================================================

// tickMsg requests the next poll.
type tickMsg time.Time

// passMsg carries one completed computation pass (or its failure).
type passMsg struct {
	snap *store.Snapshot
	view *view.View
	err  error
}

// watchModel is the bubbletea model for the live status table.
//
// Each poll re-reads the records file, takes a snapshot, and runs the
// pipeline. Results are applied under the last-snapshot-wins sequencer so
// an older pass that finishes late can never overwrite a fresher table.
type watchModel struct {
	path     string
	runner   *pipeline.Runner
	interval time.Duration
	seq      *pipeline.Sequencer

	view      *view.View
	err       error
	updatedAt time.Time
	height    int
}

func newWatchModel(path string, runner *pipeline.Runner, interval time.Duration) watchModel {
	return watchModel{
		path:     path,
		runner:   runner,
		interval: interval,
		seq:      pipeline.NewSequencer(),
		height:   20,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh runs one pass off the UI goroutine.
func (m watchModel) refresh() tea.Cmd {
	path, runner := m.path, m.runner
	return func() tea.Msg {
		ctx := context.Background()
		st, err := store.LoadFile(path)
		if err != nil {
			return passMsg{err: err}
		}
		snap, err := st.Snapshot(ctx)
		if err != nil {
			return passMsg{err: err}
		}
		v, err := runner.Compute(ctx, snap, pipeline.Options{})
		return passMsg{snap: snap, view: v, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())
	case passMsg:
		if msg.err != nil {
			m.err = msg.err
			m.updatedAt = time.Now()
			return m, nil
		}
		if m.seq.Commit(msg.snap) {
			m.view = msg.view
			m.err = nil
			m.updatedAt = time.Now()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Helmboard · " + m.path))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit · polling every " + m.interval.String()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError))
		b.WriteString(" ")
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.view == nil {
		b.WriteString(StyleDim.Render("waiting for first pass..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d subsystems · updated %s",
		len(m.view.Nodes), m.updatedAt.Format("15:04:05"))))
	b.WriteString("\n")
	return b.String()
}

func (m watchModel) renderTable() string {
	nodes := make([]view.Node, len(m.view.Nodes))
	copy(nodes, m.view.Nodes)
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Rank != nodes[j].Rank {
			return nodes[i].Rank < nodes[j].Rank
		}
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})

	rows := [][]string{}
	for _, n := range nodes {
		capped := ""
		if n.Capped {
			capped = StyleWarning.Render("capped")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", n.Rank),
			n.Name,
			renderStatus(n.OwnStatus),
			renderStatus(n.EffectiveStatus),
			capped,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tier", "Subsystem", "Own", "Effective", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}
