package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/factory"
)

// CatCommand handles the cat command
type CatCommand struct {
	factory *factory.Factory
}

// NewCatCommand creates a new cat command
func NewCatCommand(f *factory.Factory) *cobra.Command {
	cmd := &CatCommand{factory: f}

	return &cobra.Command{
		Use:   "cat <path>...",
		Short: "Print file contents",
		Long: `Prints the contents of each path to standard output.

Paths may run through containers: "logs.zip/app/today.log" prints one
archive member and "dump.sql.zst" prints the decompressed stream.`,
		Example: `  vfs cat notes.txt
  vfs cat backup.zip/etc/hosts`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}
}

// Run executes the cat command
func (c *CatCommand) Run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, path := range args {
		if err := c.cat(out, path); err != nil {
			return err
		}
	}
	return nil
}

func (c *CatCommand) cat(out io.Writer, path string) error {
	f, err := c.factory.Open(path, vfs.DefaultMode, vfs.TypeUnknown)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.CopyBuffer(out, f, f.Buffer())
	return err
}
