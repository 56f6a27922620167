// Command sani renders Markdown files, URLs or stdin as ANSI-styled text.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/sani"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/sani")
}

type cliConfig struct {
	theme           string
	width           int
	output          string
	listThemes      bool
	boring          bool
	keepLineBreaks  bool
	keepFrontMatter bool
	showVersion     bool
	inputs          []string
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sani: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "sani: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig
	flags := pflag.NewFlagSet("sani", pflag.ExitOnError)
	flags.StringVarP(&cfg.theme, "theme", "t", "default", "Theme name")
	flags.IntVarP(&cfg.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&cfg.output, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&cfg.listThemes, "list-themes", false, "List available themes")
	flags.BoolVarP(&cfg.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVarP(&cfg.keepLineBreaks, "keep-line-breaks", "k", false, "Render single newlines as line breaks instead of spaces")
	flags.BoolVar(&cfg.keepFrontMatter, "frontmatter", false, "Render front matter instead of stripping it")
	flags.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintln(os.Stderr, "Usage: sani [flags] [inputs...]")
		fmt.Fprintln(os.Stderr, "\nInputs may be file paths, file:// or http(s):// URLs.")
		fmt.Fprintln(os.Stderr, "With no input, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	cfg.inputs = flags.Args()
	return cfg, nil
}

func run(cfg cliConfig) error {
	if cfg.showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return nil
	}
	if cfg.listThemes {
		for _, name := range sani.AvailableThemes() {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	}

	theme, ok := sani.ThemeByName(cfg.theme)
	if !ok {
		return fmt.Errorf("unknown theme %q (see --list-themes)", cfg.theme)
	}
	if cfg.boring {
		theme = boringTheme()
	}

	reader, closer, err := openInputs(cfg.inputs)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(cfg.output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	var opts []sani.RenderOption
	if cfg.keepLineBreaks {
		opts = append(opts, sani.WithPreserveLineBreaks(true))
	}
	if cfg.keepFrontMatter {
		opts = append(opts, sani.WithKeepFrontMatter(true))
	}

	err = sani.Render(sani.RenderRequest{
		Reader:  reader,
		Writer:  writer,
		Width:   resolveWidth(cfg.width),
		Theme:   theme,
		Options: opts,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconvAtoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func boringTheme() sani.Theme {
	return sani.NewTheme("boring", sani.Styles{})
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader concatenates the inputs with a blank line between them,
// so each input starts its own paragraph.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	gap       string
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.gap != "" {
			n := copy(p, m.gap)
			m.gap = m.gap[n:]
			return n, nil
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			if m.idx < len(m.sources) {
				m.gap = "\n\n"
			}
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	reader := &multiInputReader{sources: sources}
	return reader, reader, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if u, err := url.Parse(raw); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	if dir := filepath.Dir(clean); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// normalizePath expands a leading ~ to the home directory and makes the
// path absolute when possible.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func strconvAtoi(value string) (int, error) {
	n := 0
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
