// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp/hcensor/filter"
	"github.com/hashicorp/hcensor/hcl"
	"github.com/hashicorp/hcensor/util"
)

// defaultDataDir is where the CLI looks for per-language word lists when no
// configuration file names a source.
const defaultDataDir = "~/.hcensor/data"

var _ cli.Command = &RunCommand{}

type RunCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	// HCL file location
	config string

	// Languages to censor, overriding the configured set
	langs []string

	// Input sources. text wins over in; stdin is the fallback.
	text string
	in   string

	// Censored output location. Empty means stdout.
	out string
}

func (c *RunCommand) init() {
	const (
		configUsageText = "Path to HCL configuration file"
		langUsageText   = "Languages to censor (comma-separated), overriding the configured set; e.g. 'en,ru'"
		textUsageText   = "Censor the given text instead of reading from a file or stdin"
		inUsageText     = "Path to the file to censor; by default text is read from stdin"
		outUsageText    = "Path the censored text should be written to; by default it is written to stdout"
	)

	// flag.ContinueOnError allows flag.Parse to return an error if one comes up, rather than doing an `os.Exit(2)`
	// on its own.
	c.flags = flag.NewFlagSet("run", flag.ContinueOnError)

	c.flags.StringVar(&c.config, "config", "", configUsageText)
	c.flags.Var(CSVFlag{Values: &c.langs}, "lang", langUsageText)
	c.flags.StringVar(&c.text, "text", "", textUsageText)
	c.flags.StringVar(&c.in, "in", "", inUsageText)
	c.flags.StringVar(&c.out, "out", "", outUsageText)

	// When invalid flags are provided, Go will output a usage message of its own. If we direct our flag set to
	// io.Discard, it will effectively be hidden, allowing us to print our own Help message upon failure.
	c.flags.SetOutput(io.Discard)
}

// NewRunCommand produces a new *command pointer, initialized for use in a CLI application.
func NewRunCommand(ui cli.Ui) *RunCommand {
	c := &RunCommand{ui: ui}
	c.init()
	return c
}

// RunCommandFactory provides a cli.CommandFactory that will produce an appropriately-initiated *command.
func RunCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewRunCommand(ui), nil
	}
}

// Help provides help text to users who pass in the --help flag or who enter invalid options.
func (c *RunCommand) Help() string {
	helpText := `Usage: hcensor run [options]

Censors profanity in text. Input comes from stdin unless -text or -in is provided, and the censored text goes to stdout unless -out is provided. A summary of the run is written to stderr.
`

	return Usage(helpText, c.flags)
}

// Synopsis provides a brief description of the command, for inclusion in the application's primary --help.
func (c *RunCommand) Synopsis() string {
	return "Censor profanity in text from stdin, a file, or a flag"
}

// Run executes the command.
func (c *RunCommand) Run(args []string) int {
	if err := c.parseFlags(args); err != nil {
		// Output the specific error to help the user understand what went wrong.
		c.ui.Warn(err.Error())
		// Since there was an issue in input, let's show our Help to try and assist the user.
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	l := configureLogging("hcensor")

	cfg, code := resolveConfig(l, c.config, c.langs)
	if code != Success {
		return code
	}

	f, err := filter.New(cfg, l)
	if err != nil {
		l.Error("problem creating filter", "error", err)
		return FilterSetupError
	}

	src, closeSrc, err := c.openInput()
	if err != nil {
		l.Error("could not open input", "path", c.in, "error", err)
		return InputError
	}
	defer closeSrc()

	dst, closeDst, err := c.openOutput()
	if err != nil {
		l.Error("could not open output", "path", c.out, "error", err)
		return OutputError
	}

	stats, runErr := f.CensorStream(dst, src)
	closeErr := closeDst()
	if runErr != nil {
		l.Error("censoring failed", "error", runErr)
		return FilterExecutionError
	}
	if closeErr != nil {
		l.Error("could not finalize output", "path", c.out, "error", closeErr)
		return OutputError
	}

	if err := writeSummary(os.Stderr, c.out, stats); err != nil {
		l.Warn("failed to generate run summary; the censored output itself is unaffected", "err", err)
		return OutputError
	}

	return Success
}

// configureLogging takes a logger name, sets the default configuration, grabs the LOG_LEVEL from our ENV vars, and
// returns a configured and usable logger.
func configureLogging(loggerName string) hclog.Logger {
	// Create logger, set default and log level
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  loggerName,
		Color: hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}

// resolveConfig builds the filter configuration from the HCL file when one is
// given, or from the defaults plus the stock data dir otherwise, and applies
// the language override on top.
func resolveConfig(l hclog.Logger, path string, langs []string) (filter.Config, int) {
	cfg := filter.DefaultConfig()

	if path == "" {
		dataDir, err := util.ExpandPath(defaultDataDir)
		if err != nil {
			l.Error("could not resolve the default data dir", "path", defaultDataDir, "error", err)
			return filter.Config{}, ConfigError
		}
		cfg.DataDir = dataDir
	} else {
		hclCfg, err := hcl.Parse(path)
		if err != nil {
			l.Error("Failed to load configuration", "config", path, "error", err)
			return filter.Config{}, ConfigError
		}
		l.Debug("HCL config is", "hcl", fmt.Sprintf("%+v", hclCfg))

		cfg, err = hcl.MapFilterConfig(hclCfg)
		if err != nil {
			l.Error("Failed to map configuration", "config", path, "error", err)
			return filter.Config{}, ConfigError
		}
	}

	if len(langs) > 0 {
		cfg.Languages = langs
	}

	return cfg, Success
}

type CSVFlag struct {
	Values *[]string
}

func (s CSVFlag) String() string {
	if s.Values == nil {
		return ""
	}
	return strings.Join(*s.Values, ",")
}

func (s CSVFlag) Set(v string) error {
	*s.Values = strings.Split(v, ",")
	return nil
}

func (c *RunCommand) parseFlags(args []string) error {
	return c.flags.Parse(args)
}

// openInput picks the text source: the -text flag, the -in file, or stdin.
func (c *RunCommand) openInput() (io.Reader, func(), error) {
	if c.text != "" {
		return strings.NewReader(c.text), func() {}, nil
	}
	if c.in != "" {
		f, err := os.Open(c.in)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	return os.Stdin, func() {}, nil
}

// openOutput picks the censored text destination: the -out file or stdout.
// The returned close function reports flush errors and must be called once
// censoring finishes; stdout is left open.
func (c *RunCommand) openOutput() (io.Writer, func() error, error) {
	if c.out == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(c.out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeSummary(writer io.Writer, dest string, stats filter.Stats) error {
	helpText := "The censoring run has completed.\n"
	if dest != "" {
		helpText = fmt.Sprintf("The censoring run has completed. The censored text can be found at %s.\n", dest)
	}
	_, err := writer.Write([]byte(helpText))
	if err != nil {
		return err
	}

	t := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	headers := []string{
		"lines",
		"tokens",
		"censored",
		"clean",
	}

	_, err = fmt.Fprint(t, formatReportLine(headers...))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(t, formatReportLine(
		strconv.Itoa(stats.Lines),
		strconv.Itoa(stats.Tokens),
		strconv.Itoa(stats.Censored),
		strconv.Itoa(stats.Tokens-stats.Censored)))
	if err != nil {
		return err
	}

	err = t.Flush()
	if err != nil {
		return err
	}
	return nil
}

func formatReportLine(cells ...string) string {
	format := ""

	// The coercion from the argument of type []string to type []interface is required for the later
	// call to fmt.Sprintf, in which variadic arguments must be of type any/interface{}.
	strValues := make([]interface{}, len(cells))
	for i, cell := range cells {
		format += "%s\t"
		strValues[i] = cell
	}

	format += "\n"

	return fmt.Sprintf(format, strValues...)
}
