package cli

import (
	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <host>",
	Short: "Show the state of a vhost",
	Long: `Show where the config and symlink of a vhost live, whether they exist,
and which addresses the host is mapped to in the hosts file.

Examples:
  apache2-vhost show example.com
  apache2-vhost show example.com --json`,
	Args: hostArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showDetail represents the detailed vhost information for output
type showDetail struct {
	Host         string   `json:"host"`
	Root         string   `json:"httpd_root"`
	Available    string   `json:"available"`
	Enabled      string   `json:"enabled"`
	ConfigExists bool     `json:"config_exists"`
	LinkExists   bool     `json:"link_exists"`
	LinkTarget   string   `json:"link_target,omitempty"`
	Active       bool     `json:"active"`
	Addresses    []string `json:"addresses"`
}

func runShow(cmd *cobra.Command, args []string) error {
	host := args[0]

	if err := validateHost(host); err != nil {
		return err
	}

	s, err := newSession(commandContext(cmd))
	if err != nil {
		return err
	}

	status, err := s.store.Inspect(host)
	if err != nil {
		return err
	}

	detail := showDetail{
		Host:         host,
		Root:         s.root,
		Available:    status.Paths.Available,
		Enabled:      status.Paths.Enabled,
		ConfigExists: status.ConfigExists,
		LinkExists:   status.LinkExists,
		LinkTarget:   status.LinkTarget,
		Active:       status.Enabled,
		Addresses:    []string{},
	}

	if s.cfg.HostsFile != "" {
		addrs, err := deps.HostsFactory.Open(s.cfg.HostsFile).Lookup(host)
		if err != nil {
			output.Warn("Could not read %s: %v", s.cfg.HostsFile, err)
		} else {
			detail.Addresses = addrs
		}
	}

	if jsonOutput {
		return output.JSON(detail)
	}

	rows := [][]string{
		{"Host", detail.Host},
		{"HTTPD root", detail.Root},
		{"Config", detail.Available + " (" + present(detail.ConfigExists) + ")"},
		{"Symlink", detail.Enabled + " (" + present(detail.LinkExists) + ")"},
	}
	if detail.LinkTarget != "" {
		rows = append(rows, []string{"Target", detail.LinkTarget})
	}
	rows = append(rows, []string{"Enabled", yesNo(detail.Active)})
	for _, addr := range detail.Addresses {
		rows = append(rows, []string{"Hosts", addr})
	}

	output.Table([]string{"FIELD", "VALUE"}, rows)
	return nil
}

func present(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}
