package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/matryoshka/pkg/imageio"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle  = focusedStyle.Copy()
	markedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // Green
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

type browseItem struct {
	path  string
	name  string
	isDir bool
}

type model struct {
	path      string
	items     []browseItem
	cursor    int
	status    string
	seedInput textinput.Model
	entering  bool
	target    string
	quitting  bool
}

func initialModel() model {
	cwd, _ := os.Getwd()

	ti := textinput.New()
	ti.Placeholder = "seed_0,seed_1,..."
	ti.CharLimit = 256

	m := model{
		path:      cwd,
		status:    "Navigate: ↑/↓ | Enter: Open Dir | e: Extract from image | q: Quit",
		seedInput: ti,
	}
	m.loadFiles()
	return m
}

func isCarrier(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		return
	}

	m.items = []browseItem{}
	// Parent directory
	m.items = append(m.items, browseItem{name: "..", isDir: true, path: filepath.Dir(m.path)})

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || isCarrier(name) {
			m.items = append(m.items, browseItem{
				name:  name,
				isDir: e.IsDir(),
				path:  filepath.Join(m.path, name),
			})
		}
	}
	m.cursor = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			switch msg.String() {
			case "esc":
				m.entering = false
				m.status = "Cancelled"
				return m, nil
			case "enter":
				seeds := m.seedInput.Value()
				m.entering = false
				return m, extractFrom(m.target, seeds)
			default:
				var cmd tea.Cmd
				m.seedInput, cmd = m.seedInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case "enter":
			selected := m.items[m.cursor]
			if selected.isDir {
				m.path = selected.path
				m.loadFiles()
			}

		case "e":
			selected := m.items[m.cursor]
			if !selected.isDir {
				m.entering = true
				m.target = selected.path
				m.seedInput.SetValue("")
				m.seedInput.Focus()
				m.status = "Enter the seed chain, comma separated. Enter runs, Esc cancels."
			}
		}

	case statusMsg:
		m.status = string(msg)
	}

	return m, nil
}

type statusMsg string

// extractFrom recovers the payload at the deepest level of the given
// chain and writes it next to the carrier.
func extractFrom(imagePath, seedSpec string) tea.Cmd {
	return func() tea.Msg {
		seeds := strings.Split(seedSpec, ",")
		if len(seeds) == 1 && seeds[0] == "" {
			return statusMsg("No seeds given!")
		}

		pm, err := imageio.Load(imagePath)
		if err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}

		eng, err := openAtDeepestLevel(pm, seeds, false)
		if err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}

		data, err := eng.Extract()
		if err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}

		outPath := imagePath + ".payload"
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}

		return statusMsg(fmt.Sprintf("Success! %d bytes -> %s", len(data), filepath.Base(outPath)))
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := fmt.Sprintf("Directory: %s\n\n", m.path)

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
			s += cursorStyle.Render(cursor)
		} else {
			s += cursor
		}

		line := ""
		if item.isDir {
			line = fmt.Sprintf("[DIR] %s", item.name)
		} else {
			line = item.name
			if m.target == item.path {
				line = markedStyle.Render(line)
			}
		}

		s += " " + line + "\n"
	}

	if m.entering {
		s += fmt.Sprintf("\nSeeds: %s\n", m.seedInput.View())
	}

	s += fmt.Sprintf("\n%s\n", m.status)
	return docStyle.Render(s)
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive terminal UI for extracting payloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
