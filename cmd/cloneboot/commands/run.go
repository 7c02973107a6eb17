package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloneboot/cloneboot/cmd/cloneboot/handlers"
)

// Run returns the command that executes a full refresh.
//
// Required flags:
//
//	--config, -c: Path to the refresh configuration YAML file
//
// Environment variables:
//
//	CLONEBOOT_API_KEY: control-plane API key (falls back to IBMCLOUD_API_KEY)
func Run() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Clone source volumes and boot the target partition",
		Long: `Run a full refresh of the target partition.

The source partition's boot and data volumes are cloned, the clones are
attached to the target, the boot device is configured, and the target is
started. If the target already carries a bootable volume from an
interrupted prior run, cloning and attachment are skipped and the run
resumes at the boot sequence.

On failure the cloned volumes are renamed with a recovery marker and left
in place for manual inspection; nothing is deleted.

Examples:
  # Run a refresh using refresh.yaml
  cloneboot run -c refresh.yaml

  # Re-run after an interruption; completed work is detected and skipped
  cloneboot run -c refresh.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
