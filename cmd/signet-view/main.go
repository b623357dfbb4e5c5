// signet-view is an interactive terminal viewer for styled interaction
// networks. It loads an edge list, runs the styling pipeline, and browses
// the result: an overview panel, node and edge tables, and a per-node
// detail panel with incident edges. The network file is watched, so edits
// on disk show up without restarting.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/signetlab/signet/pkg/config"
	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/graphio"
	"github.com/signetlab/signet/pkg/logging"
	"github.com/signetlab/signet/pkg/style"
	"github.com/signetlab/signet/pkg/vis"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4682b4")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9370db")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9370db")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4682b4")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#228b22")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6347")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#228b22")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	overviewView view = iota
	nodesView
	edgesView
	detailView
)

const viewCount = 4

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Filter   key.Binding
	Reload   key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "inspect node"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter nodes"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Filter, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Filter, k.Reload},
		{k.Up, k.Down, k.Quit},
	}
}

// loader rebuilds the styled network from disk with fixed read and render
// settings.
type loader struct {
	path       string
	readOpts   graphio.ReadOptions
	renderOpts vis.Options
}

func (l loader) load() (*graph.Network, error) {
	net, err := graphio.ReadFile(l.path, l.readOpts)
	if err != nil {
		return nil, err
	}
	res, err := vis.Render(net, l.renderOpts)
	if err != nil {
		return nil, err
	}
	return res.Net, nil
}

type model struct {
	loader      loader
	net         *graph.Network
	class       *vis.Classification
	currentView view
	nodeTable   table.Model
	edgeTable   table.Model
	filter      textinput.Model
	filtering   bool
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
	watcher     *fsnotify.Watcher
	loadedAt    time.Time
}

type fileChangedMsg struct{}

// watchCmd blocks on the watcher until the network file is rewritten.
func watchCmd(w *fsnotify.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#9370db")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#4682b4")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(l loader, net *graph.Network, class *vis.Classification, w *fsnotify.Watcher) model {
	fi := textinput.New()
	fi.Placeholder = "node id contains..."
	fi.CharLimit = 64
	fi.Width = 30

	m := model{
		loader: l,
		net:    net,
		class:  class,
		nodeTable: newTable([]table.Column{
			{Title: "ID", Width: 24},
			{Title: "Role", Width: 8},
			{Title: "Fill", Width: 14},
			{Title: "Degree", Width: 6},
		}),
		edgeTable: newTable([]table.Column{
			{Title: "From", Width: 20},
			{Title: "To", Width: 20},
			{Title: "Sign", Width: 5},
			{Title: "Color", Width: 14},
		}),
		filter:   fi,
		help:     help.New(),
		keys:     keys,
		watcher:  w,
		loadedAt: time.Now(),
	}
	m.rebuildTables()
	return m
}

func (m *model) rebuildTables() {
	filter := strings.ToLower(m.filter.Value())
	deg := degrees(m.net)

	nodeRows := make([]table.Row, 0, m.net.NodeCount())
	for _, n := range m.net.Nodes() {
		if filter != "" && !strings.Contains(strings.ToLower(n.ID), filter) {
			continue
		}
		nodeRows = append(nodeRows, table.Row{
			n.ID,
			m.class.Role(n.ID).String(),
			nodeAttr(n, graph.AttrFillColor),
			fmt.Sprintf("%d", deg[n.ID]),
		})
	}
	m.nodeTable.SetRows(nodeRows)

	edgeRows := make([]table.Row, 0, m.net.EdgeCount())
	for _, e := range m.net.Edges() {
		edgeRows = append(edgeRows, table.Row{
			e.From,
			e.To,
			signString(e),
			edgeAttr(e, graph.AttrColor),
		})
	}
	m.edgeTable.SetRows(edgeRows)
}

func (m *model) reload() {
	net, err := m.loader.load()
	if err != nil {
		m.message = fmt.Sprintf("reload failed: %v", err)
		m.messageErr = true
		return
	}
	m.net = net
	m.class = vis.Classify(m.loader.renderOpts.Sources, m.loader.renderOpts.Targets)
	m.loadedAt = time.Now()
	m.rebuildTables()
	m.message = fmt.Sprintf("reloaded: %d nodes, %d edges", net.NodeCount(), net.EdgeCount())
	m.messageErr = false
}

func (m model) Init() tea.Cmd {
	return watchCmd(m.watcher)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case fileChangedMsg:
		m.reload()
		return m, watchCmd(m.watcher)

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "esc":
				m.filtering = false
				m.filter.SetValue("")
				m.filter.Blur()
				m.rebuildTables()
			case "enter":
				m.filtering = false
				m.filter.Blur()
				m.rebuildTables()
			default:
				m.filter, cmd = m.filter.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = viewCount - 1
			} else {
				m.currentView--
			}

		case key.Matches(msg, m.keys.Filter):
			if m.currentView == nodesView {
				m.filtering = true
				m.filter.Focus()
				return m, textinput.Blink
			}

		case key.Matches(msg, m.keys.Reload):
			m.reload()

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == nodesView && len(m.nodeTable.Rows()) > 0 {
				m.currentView = detailView
			}
		}
	}

	switch m.currentView {
	case nodesView:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
		cmds = append(cmds, cmd)
	case edgesView:
		m.edgeTable, cmd = m.edgeTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("signet · " + filepath.Base(m.loader.path)))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case overviewView:
		s.WriteString(m.renderOverview())
	case nodesView:
		s.WriteString(m.renderNodes())
	case edgesView:
		s.WriteString(m.renderEdges())
	case detailView:
		s.WriteString(m.renderDetail())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Overview", "Nodes", "Edges", "Detail"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderOverview() string {
	direction := "undirected"
	if m.net.Directed() {
		direction = "directed"
	}
	signed := 0
	for _, e := range m.net.Edges() {
		if _, ok := e.Sign(); ok {
			signed++
		}
	}

	mode := m.loader.renderOpts.NetworkType
	if mode == "" {
		mode = vis.TypeDefault
	}

	netContent := fmt.Sprintf(`Network
━━━━━━━━━━━━━━━
Nodes:     %d
Edges:     %d
Signed:    %d
Kind:      %s
Mode:      %s
Loaded:    %s`,
		m.net.NodeCount(),
		m.net.EdgeCount(),
		signed,
		direction,
		mode,
		m.loadedAt.Format("15:04:05"),
	)

	roleContent := fmt.Sprintf(`Roles
━━━━━━━━━━━━━━━
Sources:   %d
Targets:   %d

Keys
━━━━━━━━━━━━━━━
[tab]      switch view
[/]        filter nodes
[r]        reload file
[q]        quit`,
		m.class.Sources(),
		m.class.Targets(),
	)

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			statsBoxStyle.Render(netContent),
			statsBoxStyle.Render(roleContent)),
	)
}

func (m model) renderNodes() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Node Browser"))
	s.WriteString("\n\n")
	if m.filtering || m.filter.Value() != "" {
		s.WriteString("Filter: ")
		s.WriteString(m.filter.View())
		s.WriteString("\n\n")
	}
	s.WriteString(m.nodeTable.View())

	return contentStyle.Render(s.String())
}

func (m model) renderEdges() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Edge Browser"))
	s.WriteString("\n\n")
	s.WriteString(m.edgeTable.View())

	return contentStyle.Render(s.String())
}

func (m model) renderDetail() string {
	row := m.nodeTable.SelectedRow()
	if row == nil {
		return contentStyle.Render("Select a node in the Nodes view first.")
	}
	id := row[0]
	node, ok := m.net.Node(id)
	if !ok {
		return contentStyle.Render("Node no longer present. Reload or reselect.")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("Node " + id))
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("Role: %s\n\n", m.class.Role(id)))

	attrKeys := make([]string, 0, len(node.Attrs))
	for k := range node.Attrs {
		attrKeys = append(attrKeys, k)
	}
	sort.Strings(attrKeys)
	for _, k := range attrKeys {
		v := node.Attrs[k]
		s.WriteString(fmt.Sprintf("  %-12s %s\n", k, swatch(v.String())))
	}

	s.WriteString("\nEdges\n")
	for _, e := range m.net.Edges() {
		if e.From != id && e.To != id {
			continue
		}
		glyph := "──"
		other := e.To
		if m.net.Directed() {
			if e.From == id {
				glyph = "─▶"
			} else {
				glyph = "◀─"
				other = e.From
			}
		} else if e.From != id {
			other = e.From
		}
		line := fmt.Sprintf("  %s %s %s", glyph, other, signString(e))
		if c := edgeAttr(e, graph.AttrColor); c != "" {
			line += "  " + swatch(c)
		}
		s.WriteString(line + "\n")
	}

	return contentStyle.Render(s.String())
}

func degrees(net *graph.Network) map[string]int {
	deg := make(map[string]int, net.NodeCount())
	for _, e := range net.Edges() {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}

func nodeAttr(n *graph.Node, key string) string {
	if v, ok := n.Attr(key); ok {
		return v.String()
	}
	return ""
}

func edgeAttr(e *graph.Edge, key string) string {
	if v, ok := e.Attr(key); ok {
		return v.String()
	}
	return ""
}

func signString(e *graph.Edge) string {
	if sign, ok := e.Sign(); ok {
		return fmt.Sprintf("%+d", sign)
	}
	return ""
}

// swatch renders a colored block next to a color value when the terminal
// can show it.
func swatch(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	hex := ""
	if strings.HasPrefix(s, "#") {
		hex = s
	} else if c, ok := colornames.Map[s]; ok {
		hex = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	if hex == "" {
		return value
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■") + " " + value
}

// roleFile is the YAML document naming the perturbed and measured nodes of
// one experiment.
type roleFile struct {
	Sources map[string]float64            `yaml:"sources"`
	Targets map[string]map[string]float64 `yaml:"targets"`
}

func loadRoles(path string) (roleFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return roleFile{}, fmt.Errorf("open role map: %w", err)
	}
	defer f.Close()

	var roles roleFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&roles); err != nil {
		return roleFile{}, fmt.Errorf("parse role map %s: %w", path, err)
	}
	return roles, nil
}

// sepRune accepts a literal separator or the two-character escape \t.
func sepRune(s string) rune {
	switch s {
	case "", "\t", `\t`:
		return '\t'
	default:
		return []rune(s)[0]
	}
}

func main() {
	networkFile := flag.String("network", "", "Path to the edge-list file")
	configFile := flag.String("config", "", "Optional YAML config file")
	rolesFile := flag.String("roles", "", "YAML role map with sources and targets")
	styleFile := flag.String("style", "", "Custom style YAML merged over the preset")
	typeFlag := flag.String("type", "", "Network type: default or sign_consistent")
	sourceCol := flag.String("source-col", "", "Source column name in the edge list")
	targetCol := flag.String("target-col", "", "Target column name in the edge list")
	sepFlag := flag.String("sep", "", "Edge-list field separator (default tab)")
	undirected := flag.Bool("undirected", false, "Read the edge list as undirected")
	flag.Parse()

	if *networkFile == "" {
		fmt.Println("Usage: signet-view --network edges.tsv [--roles roles.yaml] [--type sign_consistent]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	// The UI owns the terminal; route library logging nowhere.
	logging.SetDefaultLogger(logging.NewNopLogger())

	var roles roleFile
	if *rolesFile != "" {
		if roles, err = loadRoles(*rolesFile); err != nil {
			log.Fatalf("failed to read role map: %v", err)
		}
	}

	var custom *style.Style
	if *styleFile != "" {
		if custom, err = style.Load(*styleFile); err != nil {
			log.Fatalf("failed to read style: %v", err)
		}
	}

	netType := *typeFlag
	if netType == "" {
		netType = cfg.Render.NetworkType
	}

	l := loader{
		path: *networkFile,
		readOpts: graphio.ReadOptions{
			SourceCol: *sourceCol,
			TargetCol: *targetCol,
			Sep:       sepRune(*sepFlag),
			Directed:  !*undirected,
		},
		renderOpts: vis.Options{
			NetworkType: netType,
			Sources:     roles.Sources,
			Targets:     roles.Targets,
			Custom:      custom,
			Layout:      cfg.Render.LayoutConfig(),
		},
	}

	net, err := l.load()
	if err != nil {
		log.Fatalf("failed to load network: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if err := watcher.Add(*networkFile); err != nil {
			watcher.Close()
			watcher = nil
		}
	} else {
		watcher = nil
	}
	if watcher != nil {
		defer watcher.Close()
	}

	class := vis.Classify(roles.Sources, roles.Targets)
	p := tea.NewProgram(initialModel(l, net, class, watcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv()
}
