package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/mforster/gsutax/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. It must be declared
// before flag.Parse: Complete exits the process when a completion is
// requested by the shell.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"delivery": {Flags: map[string]complete.Predictor{"d": predict.Nothing, "q": predict.Nothing, "a": predict.Nothing, "c": predict.Nothing, "account": predict.Nothing}},
		"sale":     {Flags: map[string]complete.Predictor{"d": predict.Nothing, "q": predict.Nothing, "a": predict.Nothing, "c": predict.Nothing, "account": predict.Nothing}},
		"transfer": {Flags: map[string]complete.Predictor{"d": predict.Nothing, "a": predict.Nothing, "c": predict.Nothing, "account": predict.Nothing}},
		"tx":       {},
		"fmt":      {},
		"events":   {},
		"gains":    {Flags: map[string]complete.Predictor{"year": predict.Nothing}},
		"fetch":    {},
		"topic":    {},
	},
	Flags: map[string]complete.Predictor{
		"ledger-file": predict.Files("*.jsonl"),
		"rates-file":  predict.Files("*.jsonl"),
		"currency":    predict.Set{"EUR", "USD", "GBP", "CHF"},
		"accounts":    predict.Nothing,
		"not-before":  predict.Nothing,
	},
}

func main() {
	completion.Complete("gsutax")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
