package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	ansiblocks "github.com/danielgatis/go-ansiblocks"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		format     string
		themePath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:           "ansiblocks [file]",
		Short:         "Convert ANSI-styled text to HTML, plain text, or JSON blocks",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			out := io.Writer(os.Stdout)
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("open output: %w", err)
				}
				defer f.Close()
				out = f
			}

			var opts []ansiblocks.Option
			if themePath != "" {
				theme, err := ansiblocks.LoadTheme(themePath)
				if err != nil {
					return err
				}
				opts = append(opts, ansiblocks.WithTheme(theme))
			}

			return convert(in, out, format, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html, text, or json")
	cmd.Flags().StringVarP(&themePath, "theme", "t", "", "YAML theme file overriding palette colors")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write output to a file instead of stdout")

	return cmd
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("no input: pipe data to stdin or pass a file argument")
	}
	return os.Stdin, nil
}

// convert streams the input through a session chunk by chunk; incomplete
// escape sequences straddling chunk boundaries are carried across reads.
func convert(in io.Reader, out io.Writer, format string, opts []ansiblocks.Option) error {
	session := ansiblocks.New(opts...)

	var (
		emit   func(ansiblocks.Block)
		finish func() error
	)

	switch format {
	case "html":
		renderer := ansiblocks.NewHTMLRenderer()
		emit = func(b ansiblocks.Block) {
			io.WriteString(out, renderer.RenderBlock(b))
		}
	case "text":
		emit = func(b ansiblocks.Block) {
			io.WriteString(out, b.Value)
		}
	case "json":
		blocks := []ansiblocks.Block{}
		emit = func(b ansiblocks.Block) {
			blocks = append(blocks, b)
		}
		finish = func() error {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(blocks)
		}
	default:
		return fmt.Errorf("unknown format %q (want html, text, or json)", format)
	}

	buf := make([]byte, 32*1024)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			session.Write(string(buf[:n]), emit)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	session.Flush(emit)

	if finish != nil {
		return finish()
	}
	return nil
}
