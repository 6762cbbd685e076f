package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nuln/fbox"
)

var errSameFile = errors.New("source and destination are the same file")

// sameFile reports whether src and dst name one file on the bound
// backend, either by resolved path or by device and inode.
func sameFile(fsys *fbox.FS, src, dst string) (bool, error) {
	a, err := fsys.Resolve(src)
	if err != nil {
		return false, err
	}
	b, err := fsys.Resolve(dst)
	if err != nil {
		return false, err
	}
	if filepath.Clean(a) == filepath.Clean(b) {
		return true, nil
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false, nil
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, nil
	}
	return os.SameFile(ai, bi), nil
}

func newSizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "size PATH",
		Short: "Print the size of a file in bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := opts.fsys.GetSize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), size)
			return nil
		},
	}
}

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump PATH",
		Short: "Write the whole of a file to stdout",
		Long: `Read PATH into memory in one pass and write it to stdout.

Empty files and files that shrink while being read are reported as errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := opts.fsys.Dump(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
}

func newCpCmd(opts *options) *cobra.Command {
	var sync bool

	cmd := &cobra.Command{
		Use:   "cp SRC DST",
		Short: "Copy a file through the selected backend",
		Long: `Copy SRC to DST. DST is created or truncated. Copying a file onto
itself is rejected.

Examples:
  fbox cp in.bin out.bin
  fbox --backend fio cp in.bin out.bin --sync`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

			same, err := sameFile(opts.fsys, args[0], args[1])
			if err != nil {
				return err
			}
			if same {
				return fmt.Errorf("cp %s %s: %w", args[0], args[1], errSameFile)
			}

			src, err := opts.fsys.Open(ctx, args[0], fbox.ReadOnly)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			dst, err := opts.fsys.Open(ctx, args[1], fbox.WriteOnly|fbox.Create|fbox.Truncate)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := dst.Close(); err == nil {
					err = cerr
				}
			}()

			n, err := io.Copy(dst, src)
			if err != nil {
				return fmt.Errorf("copy %s to %s: %w", args[0], args[1], err)
			}
			if sync {
				if err := dst.Sync(); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "copied %s (%d bytes)\n", humanize.IBytes(uint64(n)), n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sync, "sync", false, "flush DST to stable storage before closing")
	return cmd
}
