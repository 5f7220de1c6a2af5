package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/factory"
)

// SumCommand handles the sum command
type SumCommand struct {
	factory *factory.Factory
}

// NewSumCommand creates a new sum command
func NewSumCommand(f *factory.Factory) *cobra.Command {
	cmd := &SumCommand{factory: f}

	cobraCmd := &cobra.Command{
		Use:   "sum <path>...",
		Short: "Print checksums of file contents",
		Long: `Prints a checksum of the content of each path in the form
"<digest>  <path>". Container paths are hashed after decompression.

Algorithms: md5, sha1, sha256, sha512, crc32, xxhash.`,
		Example: `  vfs sum -a sha256 backup.tar.gz
  vfs sum -a xxhash 'data.zip/part-0001.csv'`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("algorithm", "a", string(vfs.ChecksumSHA256), "Checksum algorithm")

	return cobraCmd
}

// Run executes the sum command
func (c *SumCommand) Run(cmd *cobra.Command, args []string) error {
	algo, _ := cmd.Flags().GetString("algorithm")
	algorithm := vfs.ChecksumAlgorithm(strings.ToLower(algo))

	for _, path := range args {
		f, err := c.factory.Open(path, vfs.DefaultMode, vfs.TypeUnknown)
		if err != nil {
			return err
		}
		sum, err := vfs.Checksum(f, algorithm)
		f.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)
	}
	return nil
}
