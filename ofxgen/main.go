package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/pvergne/ofxgen/cmd"
)

func main() {
	// Shell completion runs first: when invoked by the shell, Complete
	// prints candidates and exits.
	csvFiles := predict.Files("*.csv")
	ofxFiles := predict.Files("*.ofx")
	completer := &complete.Command{
		Sub: map[string]*complete.Command{
			"gen": {Flags: map[string]complete.Predictor{
				"i": csvFiles, "o": predict.Dirs("*"), "d": predict.Nothing,
				"t": predict.Nothing, "b": predict.Nothing, "a": predict.Nothing,
				"c": predict.Nothing, "v": predict.Set{"102", "202"}, "p": predict.Nothing,
			}},
			"dump": {Flags: map[string]complete.Predictor{
				"i": ofxFiles, "json": predict.Nothing, "path": predict.Nothing, "header": predict.Nothing,
			}},
			"securities": {Flags: map[string]complete.Predictor{
				"i": csvFiles, "o": predict.Dirs("*"), "d": predict.Nothing, "c": predict.Nothing,
			}},
			"tx": {Flags: map[string]complete.Predictor{
				"i": csvFiles, "d": predict.Nothing,
			}},
			"fidelity": {Flags: map[string]complete.Predictor{
				"i": csvFiles, "o": predict.Dirs("*"), "m": csvFiles, "l": predict.Nothing,
			}},
			"topic": {Args: predict.Set{"readme", "csv-schema", "ofx-format", "repair", "fidelity", "*"}},
		},
	}
	completer.Complete("ofxgen")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
