package tui

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dialmaster/docktui/internal/docker"
	"github.com/dialmaster/docktui/internal/domain"
)

// inventoryTimeout bounds a single inventory fetch
const inventoryTimeout = 5 * time.Second

// Item is one selectable row in the sidebar: a compose stack or a container
type Item struct {
	Ref    domain.ItemRef
	Label  string
	Status string
	Indent bool
}

// fetchInventory lists all containers and groups them into sidebar items
func fetchInventory(runtime docker.Runtime) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), inventoryTimeout)
		defer cancel()

		containers, err := runtime.List(ctx)
		if err != nil {
			return inventoryErrMsg{err: err}
		}
		return inventoryMsg(buildItems(containers))
	}
}

// buildItems groups containers by compose project. Each stack appears as a
// selectable row followed by its indented containers; standalone containers
// follow, sorted by name.
func buildItems(containers []docker.ContainerInfo) []Item {
	byProject := make(map[string][]docker.ContainerInfo)
	var standalone []docker.ContainerInfo

	for _, c := range containers {
		if project := c.Project(); project != "" {
			byProject[project] = append(byProject[project], c)
		} else {
			standalone = append(standalone, c)
		}
	}

	projects := make([]string, 0, len(byProject))
	for name := range byProject {
		projects = append(projects, name)
	}
	sort.Strings(projects)
	sort.Slice(standalone, func(i, j int) bool {
		return standalone[i].Name < standalone[j].Name
	})

	var items []Item
	for _, project := range projects {
		members := byProject[project]
		sort.Slice(members, func(i, j int) bool {
			return members[i].Name < members[j].Name
		})

		items = append(items, Item{
			Ref:   domain.StackRef(project),
			Label: project,
		})
		for _, c := range members {
			items = append(items, Item{
				Ref:    domain.ContainerRef(c.ID),
				Label:  c.Name,
				Status: c.Status,
				Indent: true,
			})
		}
	}
	for _, c := range standalone {
		items = append(items, Item{
			Ref:    domain.ContainerRef(c.ID),
			Label:  c.Name,
			Status: c.Status,
		})
	}
	return items
}
