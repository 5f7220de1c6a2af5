package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/factory"
)

// CopyCommand handles the cp command
type CopyCommand struct {
	factory *factory.Factory
}

// NewCopyCommand creates a new cp command
func NewCopyCommand(f *factory.Factory) *cobra.Command {
	cmd := &CopyCommand{factory: f}

	cobraCmd := &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a file between backends",
		Long: `Copies src to dst. Both sides are resolved by extension, so copying
to a .gz, .zst or .lz4 path compresses and copying from one decompresses.`,
		Example: `  vfs cp access.log access.log.zst
  vfs cp release.zip/README.md README.md`,
		Args: cobra.ExactArgs(2),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolP("append", "a", false, "Append to dst instead of truncating it")

	return cobraCmd
}

// Run executes the cp command
func (c *CopyCommand) Run(cmd *cobra.Command, args []string) error {
	appendMode, _ := cmd.Flags().GetBool("append")

	src, err := c.factory.Open(args[0], vfs.DefaultMode, vfs.TypeUnknown)
	if err != nil {
		return err
	}
	defer src.Close()

	mode := vfs.ParseOpenMode("wb")
	if appendMode {
		mode = vfs.ParseOpenMode("ab")
	}
	dst, err := c.factory.Open(args[1], mode, vfs.TypeUnknown)
	if err != nil {
		return err
	}

	n, err := vfs.Copy(dst, src)
	if err != nil {
		dst.Close()
		return fmt.Errorf("copy %s to %s: %w", args[0], args[1], err)
	}
	if err := dst.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d bytes copied\n", n)
	return nil
}
