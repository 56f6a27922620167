// Command gen-golden rewrites the testdata golden files from the current
// renderer output. Each golden file name encodes its fixture and width
// (<name>.w<width>.golden renders <name>.md at that width); fixtures without
// a golden get one per default width.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pkt.systems/sani"
)

var defaultWidths = []int{80}

func main() {
	root := "testdata"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	widths, err := goldenWidths(root)
	if err != nil {
		fatalf("scan %s: %v", root, err)
	}
	fixtures, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		fatalf("glob %s: %v", root, err)
	}
	if len(fixtures) == 0 {
		fatalf("no markdown fixtures under %s", root)
	}
	for _, mdPath := range fixtures {
		base := strings.TrimSuffix(filepath.Base(mdPath), ".md")
		useWidths := widths[base]
		if len(useWidths) == 0 {
			useWidths = defaultWidths
		}
		src, err := os.ReadFile(mdPath)
		if err != nil {
			fatalf("read %s: %v", mdPath, err)
		}
		for _, width := range useWidths {
			var out bytes.Buffer
			err := sani.Render(sani.RenderRequest{
				Reader: bytes.NewReader(src),
				Writer: &out,
				Width:  width,
				Theme:  sani.DefaultTheme(),
			})
			if err != nil {
				fatalf("render %s width %d: %v", mdPath, width, err)
			}
			outPath := filepath.Join(root, fmt.Sprintf("%s.w%d.golden", base, width))
			if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
				fatalf("write %s: %v", outPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
		}
	}
}

// goldenWidths maps each fixture base name to the widths of its existing
// golden files, so regeneration keeps the established width matrix.
func goldenWidths(root string) (map[string][]int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.golden"))
	if err != nil {
		return nil, err
	}
	widths := make(map[string][]int)
	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), ".golden")
		idx := strings.LastIndex(name, ".w")
		if idx < 1 {
			continue
		}
		width, err := strconv.Atoi(name[idx+2:])
		if err != nil || width <= 0 {
			continue
		}
		base := name[:idx]
		widths[base] = append(widths[base], width)
	}
	return widths, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
