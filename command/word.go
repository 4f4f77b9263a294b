package command

import (
	"flag"
	"io"

	"github.com/mitchellh/cli"

	"github.com/hashicorp/hcensor/filter"
	"github.com/hashicorp/hcensor/util"
)

var _ cli.Command = &WordCommand{}

// WordCommand censors a single word and reports the full decision, including
// the dictionary root that triggered the match, as JSON.
type WordCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	word   string
	lang   string
	config string
	out    string
}

func (c *WordCommand) init() {
	const (
		wordUsageText   = "The word to censor"
		langUsageText   = "Restrict matching to this language; by default every configured language is consulted"
		configUsageText = "Path to HCL configuration file"
		outUsageText    = "Path the JSON decision should be written to; by default it is printed to stdout"
	)

	c.flags = flag.NewFlagSet("word", flag.ContinueOnError)

	c.flags.StringVar(&c.word, "word", "", wordUsageText)
	c.flags.StringVar(&c.lang, "lang", "", langUsageText)
	c.flags.StringVar(&c.config, "config", "", configUsageText)
	c.flags.StringVar(&c.out, "out", "", outUsageText)

	c.flags.SetOutput(io.Discard)
}

// NewWordCommand produces a new *command pointer, initialized for use in a CLI application.
func NewWordCommand(ui cli.Ui) *WordCommand {
	c := &WordCommand{ui: ui}
	c.init()
	return c
}

// WordCommandFactory provides a cli.CommandFactory that will produce an appropriately-initiated *command.
func WordCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewWordCommand(ui), nil
	}
}

func (c *WordCommand) Help() string {
	helpText := `Usage: hcensor word -word <word> [options]

Censors a single word and prints the decision as JSON: the original word, its censored form, and the dictionary word that triggered the match, if any.
`

	return Usage(helpText, c.flags)
}

func (c *WordCommand) Synopsis() string {
	return "Censor a single word and print the decision as JSON"
}

// Run executes the command.
func (c *WordCommand) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		c.ui.Warn(err.Error())
		c.ui.Warn(c.Help())
		return FlagParseError
	}
	if c.word == "" {
		c.ui.Warn("the -word option is required")
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	l := configureLogging("hcensor")

	cfg, code := resolveConfig(l, c.config, nil)
	if code != Success {
		return code
	}

	f, err := filter.New(cfg, l)
	if err != nil {
		l.Error("problem creating filter", "error", err)
		return FilterSetupError
	}

	word := f.CensorWord(c.lang, c.word)

	if c.out != "" {
		if err := util.WriteJSON(word, c.out); err != nil {
			return OutputError
		}
		return Success
	}

	jsonBts, err := util.InterfaceToJSON(word)
	if err != nil {
		return OutputError
	}
	c.ui.Output(string(jsonBts))

	return Success
}
