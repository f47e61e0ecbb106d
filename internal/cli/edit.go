package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/output"
)

var editCmd = &cobra.Command{
	Use:   "edit <host>",
	Short: "Edit a vhost config",
	Long: `Open HTTPD_ROOT/sites-available/<host>.vhost.conf in an editor.

Uses $VISUAL, then $EDITOR, and defaults to vi.

Examples:
  apache2-vhost edit example.com
  EDITOR=nano apache2-vhost edit example.com`,
	Args: hostArgs,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	host := args[0]

	if err := validateHost(host); err != nil {
		return err
	}

	s, err := newSession(commandContext(cmd))
	if err != nil {
		return err
	}

	paths, err := s.store.Paths(host)
	if err != nil {
		return err
	}
	if _, err := os.Stat(paths.Available); err != nil {
		return errors.Wrap(errors.ErrCodeAccess, "config not found `"+paths.Available+"'", err)
	}

	editor := getEditor()
	editorPath, err := deps.Executor.LookPath(editor)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "editor not found: "+editor, err)
	}

	output.Info("Opening %s with %s...", paths.Available, editor)
	if err := deps.Executor.Run(commandContext(cmd), editorPath, paths.Available); err != nil {
		return errors.WrapDomain(errors.ErrCodeInternal, host, err)
	}

	output.Success("Editor closed")
	output.Info("Run 'apache2ctl configtest' and reload Apache to apply changes")
	return nil
}

// getEditor returns the user's editor command
func getEditor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	return "vi"
}
