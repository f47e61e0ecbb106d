package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/output"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

var listLong bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List vhost configs",
	Long: `List the vhost configs in HTTPD_ROOT/sites-available/. With -V the
symlinks in HTTPD_ROOT/sites-enabled/ are listed as well.

Examples:
  apache2-vhost list
  apache2-vhost list -V
  apache2-vhost list --long
  apache2-vhost list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listLong, "long", false, "Show a table of hosts and their state")

	rootCmd.AddCommand(listCmd)
}

type vhostListItem struct {
	Host    string `json:"host"`
	Config  bool   `json:"config"`
	Enabled bool   `json:"enabled"`
	Target  string `json:"target,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession(commandContext(cmd))
	if err != nil {
		return err
	}

	entries, err := s.store.List(vhost.ListOptions{IncludeLinks: verbose || listLong})
	if err != nil {
		return err
	}

	if listLong {
		return outputListTable(entries)
	}

	if jsonOutput {
		return output.JSON(entries)
	}

	for _, e := range entries {
		output.Print("%s: %s", e.Kind, e.Name)
	}
	return nil
}

// outputListTable merges configs and symlinks into one row per host
func outputListTable(entries []vhost.Entry) error {
	byHost := make(map[string]*vhostListItem)
	for _, e := range entries {
		item, ok := byHost[e.Host]
		if !ok {
			item = &vhostListItem{Host: e.Host}
			byHost[e.Host] = item
		}
		switch e.Kind {
		case vhost.KindConfig:
			item.Config = true
		case vhost.KindSymlink:
			item.Enabled = true
			item.Target = e.Target
		}
	}

	items := make([]vhostListItem, 0, len(byHost))
	for _, item := range byHost {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Host < items[j].Host
	})

	if jsonOutput {
		return output.JSON(items)
	}
	if len(items) == 0 {
		output.Info("No virtual hosts configured")
		return nil
	}

	headers := []string{"HOST", "CONFIG", "ENABLED", "TARGET"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Host, yesNo(item.Config), yesNo(item.Enabled), item.Target})
	}
	output.Table(headers, rows)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
