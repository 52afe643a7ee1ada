// Command bbcodedemo renders a BBCode input file (or stdin) to HTML, as a
// thin CLI shell around the bbcode package — not a wire protocol or server,
// per spec §6's "no persisted state" guidance; just a peripheral entry point
// for trying the library out.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/Drolfothesgnir/bbcode"
	"github.com/Drolfothesgnir/bbcode/attr"
	"github.com/Drolfothesgnir/bbcode/tags"
	"github.com/Drolfothesgnir/bbcode/util"
)

func main() {
	app := &cli.App{
		Name:      "bbcodedemo",
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		Usage:     "render BBCode input to HTML",
		UsageText: "bbcodedemo [options] [INPUT_FILE] (reads stdin if omitted)",
		Action:    render,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write HTML to `FILE` instead of stdout"},
			&cli.BoolFlag{Name: "close-open-tags", Usage: "auto-close unbalanced tags instead of leaving them literal"},
			&cli.BoolFlag{Name: "lenient-attributes", Usage: "accept tags with malformed attributes instead of rejecting them"},
			&cli.BoolFlag{Name: "indirect-attributes", Usage: "require named attributes only, no bare fallback value"},
			&cli.StringFlag{Name: "quote", Value: "double", Usage: "attribute quote style: double, single, or both"},
			&cli.StringSliceFlag{Name: "forbid", Usage: "tag names to disable for this run"},
			&cli.BoolFlag{Name: "errors", Usage: "print unparsed/auto-closed tag names to stderr after rendering"},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("bbcodedemo failed")
	}
}

func render(c *cli.Context) error {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()

	config, err := util.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configureLogger(config)

	input, err := readInput(c)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	quote, err := parseQuote(c.String("quote"))
	if err != nil {
		return err
	}

	p := bbcode.New(
		bbcode.WithTags(tags.Default()),
		bbcode.WithCloseOpenTags(c.Bool("close-open-tags") || config.CloseOpenTags),
		bbcode.WithStrictAttributes(!c.Bool("lenient-attributes") && config.StrictAttributes),
		bbcode.WithDirectAttributes(!c.Bool("indirect-attributes") && config.DirectAttributes),
		bbcode.WithAttributeQuote(quote),
		bbcode.WithLinebreaks(config.Linebreaks),
		bbcode.WithStripLinebreaks(config.StripLinebreaks),
	)

	if names := c.StringSlice("forbid"); len(names) > 0 {
		p.Forbid(names...)
	}

	out := p.Render(input)

	logger.Info().Int("input_bytes", len(input)).Int("output_bytes", len(out)).Msg("rendered")

	if err := writeOutput(c, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if c.Bool("errors") {
		if errs := p.Error(); len(errs) > 0 {
			fmt.Fprintln(os.Stderr, "unparsed or auto-closed tags:", errs)
		}
	}

	return nil
}

func configureLogger(config util.Config) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func readInput(c *cli.Context) (string, error) {
	if c.Args().Present() {
		data, err := os.ReadFile(c.Args().First())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var b []byte
	r := bufio.NewReader(os.Stdin)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		b = append(b, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return string(b), nil
}

func writeOutput(c *cli.Context, html string) error {
	path := c.String("output")
	if path == "" {
		_, err := fmt.Println(html)
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}

func parseQuote(name string) (attr.Quote, error) {
	switch name {
	case "double", "":
		return attr.QuoteDouble, nil
	case "single":
		return attr.QuoteSingle, nil
	case "both":
		return attr.QuoteBoth, nil
	default:
		return 0, errors.New("invalid --quote value: must be double, single, or both")
	}
}
