package cli

import (
	"fmt"
	"runtime"

	"github.com/mintmuse/mintmuse-cli/internal/config"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, config.Version)
				return
			}
			fmt.Fprintf(out, "mintmuse %s\n", config.Version)
			fmt.Fprintf(out, "  commit:   %s\n", config.Commit)
			fmt.Fprintf(out, "  built:    %s\n", config.Date)
			fmt.Fprintf(out, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version")

	return cmd
}
