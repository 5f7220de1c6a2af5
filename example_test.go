package vfs_test

import (
	"fmt"
	"strings"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/driver/memory"
	"github.com/gobeaver/vfs/wildcard"
)

func ExampleFile() {
	f := memory.New(vfs.ParseFilename("greeting.txt"))
	_ = f.OpenWith(vfs.ParseOpenMode("w+"))
	defer f.Close()

	_, _ = vfs.Printf(f, "hello, %s", "world")

	// The end anchor counts backwards from the end.
	pos, _ := f.SeekTo(5, vfs.SeekEnd)
	data, _ := vfs.ReadAll(f)

	fmt.Println(pos, string(data), f.EOF())
	// Output:
	// 7 world true
}

func ExampleFilename() {
	name := vfs.ParseFilenameDelim(`d:\logs\2024\app.log.gz`, '\\')

	fmt.Println(name.BasePath())
	fmt.Println(name.FileName())
	fmt.Println(name.Extension(vfs.Upper))
	fmt.Println(name.DrivePath())
	// Output:
	// d:\logs\2024\
	// app.log.gz
	// .GZ
	// D:\
}

func ExampleChecksum() {
	f := memory.NewFromBytes(vfs.ParseFilename("data.bin"), []byte("hello world"))
	_ = f.Open()
	defer f.Close()

	sum, _ := vfs.Checksum(f, vfs.ChecksumSHA256)
	fmt.Println(sum)
	// Output:
	// b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9
}

func ExampleChain() {
	root := vfs.ParseFilenameDelim("src/*.go", '/')
	visit := vfs.Chain(
		vfs.Depth(1, root),
		vfs.FileFilter(func(path string) bool { return !strings.HasSuffix(path, "_test.go") }),
	)

	for _, p := range []string{"src/main.go", "src/main_test.go", "src/pkg"} {
		fmt.Println(p, visit(p, p == "src/pkg"))
	}
	// Output:
	// src/main.go continue
	// src/main_test.go skip
	// src/pkg skip
}

func ExampleReadOnly() {
	f := vfs.ReadOnly(memory.NewFromBytes(vfs.ParseFilename("config.json"), []byte("{}")))
	_ = f.Open()
	defer f.Close()

	_, err := f.Write([]byte("x"))
	fmt.Println(err)
	// Output:
	// write config.json: operation not allowed: handle is read-only
}

func Example_wildcard() {
	fmt.Println(wildcard.Match("*.[ch]", "main.C", 0))
	fmt.Println(wildcard.Match("*.[ch]", "main.C", wildcard.CaseSensitive))
	fmt.Println(wildcard.Match("report-??.csv", "report-07.csv", 0))
	// Output:
	// true
	// false
	// true
}
