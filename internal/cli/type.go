package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/factory"
)

// TypeCommand handles the type command
type TypeCommand struct {
	factory *factory.Factory
}

// TypeInfo describes how a path resolves
type TypeInfo struct {
	Path        string `json:"path"`
	Backend     string `json:"backend"`
	Container   string `json:"container,omitempty"`
	Member      string `json:"member,omitempty"`
	Length      int64  `json:"length"`
	ContentType string `json:"contentType,omitempty"`
}

// NewTypeCommand creates a new type command
func NewTypeCommand(f *factory.Factory) *cobra.Command {
	cmd := &TypeCommand{factory: f}

	cobraCmd := &cobra.Command{
		Use:   "type <path>...",
		Short: "Show which backend a path resolves to",
		Long: `Shows the backend chosen for each path, the container and member it
splits into, the content length where the backend knows it, and a guess
of the content type.`,
		Example: `  vfs type archive.zip/dir/a.txt
  vfs type --format json payload.bin`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the type command
func (c *TypeCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	infos := make([]TypeInfo, 0, len(args))
	for _, path := range args {
		info, err := c.describe(path)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	for _, info := range infos {
		fmt.Fprintf(out, "%s: %s", info.Path, info.Backend)
		if info.Container != "" {
			fmt.Fprintf(out, " container=%s member=%s", info.Container, info.Member)
		}
		if info.Length != vfs.Invalid {
			fmt.Fprintf(out, " length=%d", info.Length)
		}
		if info.ContentType != "" {
			fmt.Fprintf(out, " content-type=%s", info.ContentType)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func (c *TypeCommand) describe(path string) (TypeInfo, error) {
	f, err := c.factory.Handle(path, vfs.TypeUnknown, vfs.TypeUnknown)
	if err != nil {
		return TypeInfo{}, err
	}

	info := TypeInfo{
		Path:    path,
		Backend: f.Type().String(),
		Length:  vfs.Invalid,
	}
	if container := c.factory.DetectContainer(path); container.Found && container.Nested {
		info.Container = container.Path
		info.Member = container.Member
	}

	if err := f.Open(); err != nil {
		return info, nil
	}
	defer f.Close()

	info.Length = f.Length()
	header := make([]byte, 512)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return info, nil
	}
	info.ContentType = vfs.GuessContentType(vfs.ParseFilename(path), header[:n])
	return info, nil
}
