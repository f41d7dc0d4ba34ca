package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mithrel/finreply/internal/present"
	"github.com/mithrel/finreply/pkg/api"
)

const maxBatchLine = 4 << 20

func newRenderCmd() *cobra.Command {
	var batch bool
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a reply (or a batch of replies) to HTML",
		Long: `Render reads an assistant reply from a file or stdin and writes the
rendered fragment. With --batch the input is NDJSON, one {"texto": "..."}
object per line, and the replies are rendered concurrently.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			out := cmd.OutOrStdout()

			mode, err := resolveMode(app.Cfg, out, batch)
			if err != nil {
				return err
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: app.Cfg.GetBool("output.json_indent"),
				Style:      app.Cfg.GetString("output.style"),
				Width:      app.Cfg.GetInt("output.width"),
				Workers:    app.Cfg.GetInt("batch.workers"),
			}

			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			if batch {
				texts, err := readBatch(in)
				if err != nil {
					return err
				}
				return withPager(cmd.Context(), out, cmd.ErrOrStderr(), mode, func(w io.Writer) error {
					return present.RenderBatch(cmd.Context(), w, app.Renderer, texts, opts)
				})
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return withPager(cmd.Context(), out, cmd.ErrOrStderr(), mode, func(w io.Writer) error {
				return present.RenderReply(w, app.Renderer, string(data), opts)
			})
		},
	}
	cmd.Flags().BoolVar(&batch, "batch", false, `read NDJSON {"texto": ...} lines and render each`)
	cmd.Flags().String("format", "", "output format: html|json|ndjson|pretty")
	cmd.Flags().Bool("indent", false, "indent json output")
	cmd.Flags().String("style", "", "glamour style for pretty output")
	cmd.Flags().Int("width", 0, "word wrap width for pretty output")
	cmd.Flags().Int("workers", 0, "concurrent renders in batch mode")
	cmd.Flags().String("marker", "", "card marker override")
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"html", "json", "ndjson", "pretty"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// resolveMode picks the configured format, or a default suited to out.
func resolveMode(v *viper.Viper, out io.Writer, batch bool) (present.Mode, error) {
	if name := v.GetString("output.format"); name != "" {
		return present.ParseMode(name)
	}
	switch {
	case isTerminal(out):
		return present.ModePretty, nil
	case batch:
		return present.ModeNDJSON, nil
	default:
		return present.ModeHTML, nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// readBatch parses NDJSON render requests, skipping blank lines.
func readBatch(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxBatchLine)
	var texts []string
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var req api.RenderRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return nil, fmt.Errorf("batch line %d: %w", line, err)
		}
		texts = append(texts, req.Texto)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return texts, nil
}
