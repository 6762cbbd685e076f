package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nuln/fbox"
)

func newStatCmd(opts *options) *cobra.Command {
	var (
		asJSON bool
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "stat PATH",
		Short: "Show filesystem statistics for a path",
		Long: `Show the capacity of the filesystem holding PATH and name its type.

Examples:
  fbox stat /
  fbox stat --raw /var/lib
  fbox stat --json . | jq .availableBytes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.fsys.Statfs(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			printStats(cmd, st, raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&raw, "raw", false, "print byte counts instead of human-readable sizes")
	return cmd
}

func printStats(cmd *cobra.Command, st *fbox.FilesystemStats, raw bool) {
	size := func(n uint64) string {
		if raw {
			return fmt.Sprintf("%d", n)
		}
		return humanize.IBytes(n)
	}

	typeName := st.PaddedTypeName()
	if typeName == "" {
		typeName = "unknown"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Path:       %s\n", st.Path)
	fmt.Fprintf(w, "Type:       %s %#x\n", typeName, st.Magic)
	if len(st.TypeCandidates) > 1 {
		fmt.Fprintf(w, "Candidates: %s\n", strings.Join(st.TypeCandidates, ", "))
	}
	fmt.Fprintf(w, "Block size: %s\n", size(st.BlockSize))
	fmt.Fprintf(w, "Total:      %s\n", size(st.TotalBytes))
	fmt.Fprintf(w, "Available:  %s\n", size(st.AvailableBytes))
	fmt.Fprintf(w, "Free:       %s\n", size(st.FreeBytes))
}
