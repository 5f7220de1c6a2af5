package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/factory"
)

// ListCommand handles the ls command
type ListCommand struct {
	factory *factory.Factory
}

// NewListCommand creates a new ls command
func NewListCommand(f *factory.Factory) *cobra.Command {
	cmd := &ListCommand{factory: f}

	cobraCmd := &cobra.Command{
		Use:   "ls <pattern>",
		Short: "List files matching a wildcard pattern",
		Long: `Lists the files below a directory, or inside a zip archive, whose
names match the last path component of the pattern.

The pattern supports *, ? and [...] sets. Inside archives the pattern is
matched against the archive-relative path.`,
		Example: `  vfs ls 'src/*.go' -r
  vfs ls 'release.zip/docs/*.md'
  vfs ls 'logs/*' -r --exclude '**/tmp/**'`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories")
	cobraCmd.Flags().StringSlice("exclude", nil, "Glob of paths to leave out (repeatable)")
	cobraCmd.Flags().Int("max-depth", 0, "Descend at most this many levels (0 = unlimited)")
	cobraCmd.Flags().IntP("limit", "n", 0, "Stop after this many matches (0 = unlimited)")

	return cobraCmd
}

// Run executes the ls command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := c.factory.Scanner(args[0], recursive, vfs.WithExclude(exclude...))
	if err != nil {
		return err
	}

	var visitors []vfs.Visitor
	if maxDepth > 0 {
		visitors = append(visitors, vfs.Depth(maxDepth, s.Root()))
	}
	if limit > 0 {
		visitors = append(visitors, vfs.Limit(limit))
	}
	if len(visitors) > 0 {
		if vs, ok := s.(interface{ SetVisitor(vfs.Visitor) }); ok {
			vs.SetVisitor(vfs.Chain(visitors...))
		}
	}

	paths, err := s.Scan()
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return err
}
