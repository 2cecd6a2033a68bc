package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/fstr"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/fstr")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	commands    bool
	mentions    bool
	hashtags    bool
	stickers    bool
	links       bool
	markdown    bool
	textEmoji   bool
	emojiTokens bool
	plain       bool
	apply       []string
	setLinks    []string
	strip       bool
	format      string
	themeName   string
	width       int
	osc8        string
	softWrap    bool
	listThemes  bool
	outPath     string
	boring      bool
	sanitize    bool
	warnings    bool
	verbose     bool
	typeChunk   int
	typeDelay   time.Duration
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("fstr", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&opts.commands, "commands", false, "Detect /commands")
	flags.BoolVar(&opts.mentions, "mentions", true, "Detect @mentions")
	flags.BoolVar(&opts.hashtags, "hashtags", true, "Detect #hashtags")
	flags.BoolVar(&opts.stickers, "stickers", true, "Detect legacy #u123s# user stickers")
	flags.BoolVar(&opts.links, "links", true, "Detect links")
	flags.BoolVar(&opts.markdown, "markdown", true, "Parse markdown delimiters")
	flags.BoolVar(&opts.textEmoji, "text-emoji", true, "Detect textual emoji such as :)")
	flags.BoolVar(&opts.emojiTokens, "emoji-tokens", false, "Emit emoji as standalone tokens")
	flags.BoolVarP(&opts.plain, "plain", "p", false, "Disable every scanner; input becomes a single text token")
	flags.StringArrayVarP(&opts.apply, "apply", "a", nil, "Format update flag:from:to (prefix - removes, = sets; flags joined with +)")
	flags.StringArrayVar(&opts.setLinks, "set-link", nil, "Manual link url:from:to (empty url removes links)")
	flags.BoolVar(&opts.strip, "strip-markdown", false, "Drop markdown delimiters after parsing")
	flags.StringVarP(&opts.format, "format", "f", "table", "Output format: table|text|markdown|ansi")
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&opts.osc8, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.BoolVar(&opts.softWrap, "soft-wrap", false, "Break words longer than the width")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "Drop invalid UTF-8 and control characters instead of failing")
	flags.BoolVar(&opts.warnings, "warnings", false, "Print parse warnings to stderr")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")
	flags.IntVar(&opts.typeChunk, "type", 0, "Type the input into an empty composer N graphemes at a time instead of parsing it")
	flags.DurationVar(&opts.typeDelay, "type-delay", 0, "Pause between typed chunks")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: fstr [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, text is read from stdin.")
		fmt.Fprintln(stderr, "Offsets are byte offsets into the input, markdown delimiters included.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	logger := zerolog.Nop()
	if opts.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	}

	reader, closer, err := openInputs(flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	src, err := io.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}

	var text string
	if opts.sanitize {
		text = fstr.SanitizeInput(src)
	} else {
		if err := fstr.ValidateInput(src); err != nil {
			fmt.Fprintf(stderr, "invalid input: %v\n", err)
			return 1
		}
		text = string(src)
	}

	var seq fstr.Sequence
	var warnings []fstr.Warning
	if opts.typeChunk > 0 {
		seq, err = fstr.SimulateTyping(context.Background(), fstr.TypingRequest{
			Reader:    strings.NewReader(text),
			ChunkSize: opts.typeChunk,
			Delay:     opts.typeDelay,
			Options:   parseOptions(opts, logger),
			OnChunk: func(s fstr.Sequence) error {
				logger.Debug().Int("bytes", s.Len()).Int("tokens", len(s)).Msg("typed chunk")
				return nil
			},
		})
		if err != nil {
			fmt.Fprintf(stderr, "type input: %v\n", err)
			return 1
		}
	} else {
		seq, warnings = fstr.ParseWithWarnings(text, parseOptions(opts, logger)...)
	}
	logger.Debug().Int("bytes", len(text)).Int("tokens", len(seq)).Int("warnings", len(warnings)).Msg("parsed input")
	if opts.warnings {
		for _, w := range warnings {
			fmt.Fprintf(stderr, "warning: %s at byte %d: %s\n", w.Issue, w.Pos, w.Description)
		}
	}

	for _, raw := range opts.apply {
		op, err := parseApply(raw)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --apply %q: %v\n", raw, err)
			return 2
		}
		seq, err = fstr.ApplyFormat(seq, op.from, op.to, op.update)
		if err != nil {
			fmt.Fprintf(stderr, "apply %q: %v\n", raw, err)
			return 1
		}
		logger.Debug().Str("update", raw).Int("tokens", len(seq)).Msg("applied format")
	}
	for _, raw := range opts.setLinks {
		op, err := parseSetLink(raw)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --set-link %q: %v\n", raw, err)
			return 2
		}
		seq, err = fstr.SetLink(seq, op.from, op.to, op.link)
		if err != nil {
			fmt.Fprintf(stderr, "set link %q: %v\n", raw, err)
			return 1
		}
	}
	if opts.strip {
		seq = fstr.StripMarkdown(seq)
	}

	writer, closeOut, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	width := resolveWidth(opts.width)
	switch strings.ToLower(strings.TrimSpace(opts.format)) {
	case "table":
		err = writeTable(writer, seq)
	case "text":
		_, err = io.WriteString(writer, wrapPlain(seq.Text(), width))
	case "markdown", "md":
		_, err = io.WriteString(writer, wrapPlain(seq.Markdown(), width))
	case "ansi":
		err = renderANSI(writer, seq, opts, width)
	default:
		fmt.Fprintf(stderr, "unknown --format %q (expected table|text|markdown|ansi)\n", opts.format)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func parseOptions(opts options, logger zerolog.Logger) []fstr.ParseOption {
	if opts.plain {
		return []fstr.ParseOption{fstr.WithAll(false), fstr.WithLogger(logger)}
	}
	return []fstr.ParseOption{
		fstr.WithCommands(opts.commands),
		fstr.WithMentions(opts.mentions),
		fstr.WithHashTags(opts.hashtags),
		fstr.WithUserStickers(opts.stickers),
		fstr.WithLinks(opts.links),
		fstr.WithMarkdown(opts.markdown),
		fstr.WithTextEmoji(opts.textEmoji),
		fstr.WithEmojiTokens(opts.emojiTokens),
		fstr.WithLogger(logger),
	}
}

func renderANSI(w io.Writer, seq fstr.Sequence, opts options, width int) error {
	theme, ok := fstr.ThemeByName(opts.themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q (see --list-themes)", opts.themeName)
	}
	if opts.boring {
		theme = boringTheme()
	}
	osc8, err := resolveOSC8(opts.osc8)
	if err != nil {
		return fmt.Errorf("invalid --osc8 %q: %w", opts.osc8, err)
	}
	if err := fstr.Render(fstr.RenderRequest{
		Sequence: seq,
		Writer:   w,
		Width:    width,
		Theme:    theme,
		Markdown: !opts.strip,
		Options:  []fstr.RenderOption{fstr.WithOSC8(osc8), fstr.WithSoftWrap(opts.softWrap)},
	}); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func wrapPlain(text string, width int) string {
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

type applyOp struct {
	update fstr.FormatUpdate
	from   int
	to     int
}

// parseApply reads flag:from:to. "bold+italic:0:4" adds, "-bold:0:4"
// removes and "=bold:0:4" replaces the format; "=none:0:4" clears it.
func parseApply(raw string) (applyOp, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return applyOp{}, fmt.Errorf("expected flag:from:to")
	}
	from, to, err := parseRange(parts[1], parts[2])
	if err != nil {
		return applyOp{}, err
	}
	spec := parts[0]
	mode := byte('+')
	if spec != "" && (spec[0] == '-' || spec[0] == '=' || spec[0] == '+') {
		mode = spec[0]
		spec = spec[1:]
	}
	flags, err := parseFlags(spec)
	if err != nil {
		return applyOp{}, err
	}
	op := applyOp{from: from, to: to}
	switch mode {
	case '-':
		op.update = fstr.RemoveFormat(flags)
	case '=':
		op.update = fstr.SetFormat(flags)
	default:
		op.update = fstr.AddFormat(flags)
	}
	return op, nil
}

func parseFlags(spec string) (fstr.Format, error) {
	if strings.EqualFold(strings.TrimSpace(spec), "none") {
		return fstr.FormatNone, nil
	}
	var f fstr.Format
	for _, name := range strings.FieldsFunc(spec, func(r rune) bool { return r == '+' || r == '|' || r == ',' }) {
		flag, ok := fstr.FormatByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown format %q", name)
		}
		f = fstr.Union(f, flag)
	}
	if f == fstr.FormatNone {
		return 0, fmt.Errorf("no format given")
	}
	return f, nil
}

type linkOp struct {
	link string
	from int
	to   int
}

// parseSetLink reads url:from:to; the url may itself contain colons.
func parseSetLink(raw string) (linkOp, error) {
	raw = strings.TrimSpace(raw)
	last := strings.LastIndexByte(raw, ':')
	if last < 0 {
		return linkOp{}, fmt.Errorf("expected url:from:to")
	}
	mid := strings.LastIndexByte(raw[:last], ':')
	if mid < 0 {
		return linkOp{}, fmt.Errorf("expected url:from:to")
	}
	from, to, err := parseRange(raw[mid+1:last], raw[last+1:])
	if err != nil {
		return linkOp{}, err
	}
	return linkOp{link: raw[:mid], from: from, to: to}, nil
}

func parseRange(fromRaw, toRaw string) (int, int, error) {
	from, err := strconv.Atoi(strings.TrimSpace(fromRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("from: %w", err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(toRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

func printThemes(w io.Writer) {
	for _, name := range fstr.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
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
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return fstr.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func boringTheme() fstr.Theme {
	return fstr.NewTheme("boring", fstr.Styles{})
}
