// Package cli implements the vfs command line tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/gobeaver/vfs/factory"
)

// NewRootCommand creates the vfs command with all subcommands attached.
func NewRootCommand(f *factory.Factory) *cobra.Command {
	root := &cobra.Command{
		Use:   "vfs",
		Short: "Read, list and checksum files through containers",
		Long: `vfs treats zip archives and gzip, zstd and lz4 streams as part of the
path. Every command accepts paths such as "backup.zip/etc/hosts" or
"dump.sql.gz".

Configuration is read from BEAVER_VFS_* environment variables.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		NewCatCommand(f),
		NewCopyCommand(f),
		NewListCommand(f),
		NewSumCommand(f),
		NewTypeCommand(f),
	)
	return root
}
