package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/config"
	"github.com/akoimeexx/apache2-vhost/internal/executor"
	"github.com/akoimeexx/apache2-vhost/internal/locator"
	"github.com/akoimeexx/apache2-vhost/internal/output"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Apache setup and every vhost",
	Long: `Run diagnostic checks on the web server and the vhost directories.

Checks:
  - Apache binary and version
  - Apache config syntax (apache2 -t)
  - Configuration file and HTTPD_ROOT
  - sites-available and sites-enabled directories
  - Every vhost: config present, symlink target, hosts mapping

Examples:
  apache2-vhost doctor
  apache2-vhost doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// Check statuses.
const (
	checkSuccess = "success"
	checkWarning = "warning"
	checkError   = "error"
)

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HostStatus represents the checks of a single vhost
type HostStatus struct {
	Host    string        `json:"host"`
	Enabled bool          `json:"enabled"`
	Checks  []CheckResult `json:"checks"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	System        []CheckResult `json:"system"`
	Configuration []CheckResult `json:"configuration"`
	Hosts         []HostStatus  `json:"vhosts"`
}

var apacheVersion = regexp.MustCompile(`Apache/(\d+\.\d+\.\d+)`)

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := &DoctorReport{}
	report.System = checkSystem(ctx, deps.Executor, cfg)

	root, err := resolveRoot(ctx, cfg)
	report.Configuration = checkConfiguration(cfg, root, err)
	if err == nil {
		store := deps.StoreFactory.Create(root, cfg.Suffix)
		var editor HostsEditor
		if cfg.ManageHosts {
			editor = deps.HostsFactory.Open(cfg.HostsFile)
		}
		hosts, err := checkHosts(store, editor)
		if err != nil {
			report.Configuration = append(report.Configuration, CheckResult{
				Status:  checkError,
				Message: err.Error(),
			})
		}
		report.Hosts = hosts
	}

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

// checkSystem looks for the Apache binary and runs its syntax check
func checkSystem(ctx context.Context, exec executor.CommandExecutor, cfg *config.Config) []CheckResult {
	results := []CheckResult{{
		Status:  checkSuccess,
		Message: "Platform " + locator.Platform(),
	}}

	binary, found := lo.Find(locator.Binaries(cfg.ApacheBinary), func(name string) bool {
		_, err := exec.LookPath(name)
		return err == nil
	})
	if !found {
		// Without a binary the root can still come from the config or the default.
		status := checkError
		if cfg.HTTPDRoot != "" || !cfg.Locate {
			status = checkWarning
		}
		return append(results, CheckResult{
			Status:  status,
			Message: "Apache not installed",
		})
	}

	version := "unknown"
	if out, err := exec.Output(ctx, binary, "-v"); err == nil {
		if m := apacheVersion.FindSubmatch(out); len(m) >= 2 {
			version = string(m[1])
		}
	}
	results = append(results, CheckResult{
		Status:  checkSuccess,
		Message: fmt.Sprintf("Apache installed (%s %s)", binary, version),
	})

	if _, err := exec.Output(ctx, binary, "-t"); err != nil {
		results = append(results, CheckResult{
			Status:  checkError,
			Message: fmt.Sprintf("Apache config syntax error: %v", err),
		})
	} else {
		results = append(results, CheckResult{
			Status:  checkSuccess,
			Message: "Apache config syntax OK",
		})
	}

	return results
}

func checkConfiguration(cfg *config.Config, root string, rootErr error) []CheckResult {
	results := []CheckResult{}

	if cfg.File != "" {
		results = append(results, CheckResult{
			Status:  checkSuccess,
			Message: fmt.Sprintf("Config file loaded (%s)", cfg.File),
		})
	} else {
		results = append(results, CheckResult{
			Status:  checkWarning,
			Message: "No config file, using defaults",
		})
	}

	if rootErr != nil {
		return append(results, CheckResult{
			Status:  checkError,
			Message: rootErr.Error(),
		})
	}
	results = append(results, CheckResult{
		Status:  checkSuccess,
		Message: fmt.Sprintf("HTTPD_ROOT %s", root),
	})

	for _, dir := range []string{vhost.AvailableDir, vhost.EnabledDir} {
		path := filepath.Join(root, dir)
		info, err := os.Stat(path)
		switch {
		case err != nil:
			results = append(results, CheckResult{Status: checkError, Message: fmt.Sprintf("%s missing", path)})
		case !info.IsDir():
			results = append(results, CheckResult{Status: checkError, Message: fmt.Sprintf("%s is not a directory", path)})
		default:
			results = append(results, CheckResult{Status: checkSuccess, Message: fmt.Sprintf("%s found", path)})
		}
	}

	if cfg.ManageHosts {
		if _, err := os.Stat(cfg.HostsFile); err != nil {
			results = append(results, CheckResult{Status: checkWarning, Message: fmt.Sprintf("%s not readable", cfg.HostsFile)})
		} else {
			results = append(results, CheckResult{Status: checkSuccess, Message: fmt.Sprintf("%s found", cfg.HostsFile)})
		}
	}

	return results
}

// checkHosts inspects every host that has a config or a symlink.
// editor is nil when the hosts file is not managed.
func checkHosts(store vhost.Store, editor HostsEditor) ([]HostStatus, error) {
	statuses := []HostStatus{}

	entries, err := store.List(vhost.ListOptions{IncludeLinks: true})
	if err != nil {
		return statuses, err
	}
	names := lo.Uniq(lo.Map(entries, func(e vhost.Entry, _ int) string { return e.Host }))
	sort.Strings(names)

	for _, host := range names {
		st, err := store.Inspect(host)
		if err != nil {
			statuses = append(statuses, HostStatus{
				Host:   host,
				Checks: []CheckResult{{Status: checkError, Message: err.Error()}},
			})
			continue
		}

		status := HostStatus{Host: host, Enabled: st.Enabled, Checks: []CheckResult{}}
		allOK := true

		switch {
		case st.LinkExists && !st.ConfigExists:
			status.Checks = append(status.Checks, CheckResult{Status: checkError, Message: "dangling symbolic link"})
			allOK = false
		case st.LinkExists && !st.Enabled:
			status.Checks = append(status.Checks, CheckResult{
				Status:  checkWarning,
				Message: fmt.Sprintf("symlink points to %s", st.LinkTarget),
			})
			allOK = false
		}

		if editor != nil && st.Enabled {
			if addrs, err := editor.Lookup(host); err == nil && len(addrs) == 0 {
				status.Checks = append(status.Checks, CheckResult{
					Status:  checkWarning,
					Message: fmt.Sprintf("not mapped in %s", editor.Path()),
				})
				allOK = false
			}
		}

		if allOK {
			statusText := "disabled"
			if status.Enabled {
				statusText = "enabled"
			}
			status.Checks = append(status.Checks, CheckResult{Status: checkSuccess, Message: statusText})
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking system requirements...")
	for _, check := range report.System {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
	output.Print("")

	if len(report.Hosts) == 0 {
		output.Print("No vhosts configured")
		return
	}

	output.Print("Checking vhosts...")
	for _, h := range report.Hosts {
		for _, check := range h.Checks {
			displayCheck(CheckResult{Status: check.Status, Message: h.Host + " - " + check.Message})
		}
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case checkSuccess:
		output.Success("%s", check.Message)
	case checkWarning:
		output.Warn("%s", check.Message)
	case checkError:
		output.Error("%s", check.Message)
	}
}
