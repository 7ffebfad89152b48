package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/formlab/xresult/internal/api"
	"github.com/formlab/xresult/internal/logger"
	"github.com/formlab/xresult/pkg/xr"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "predict":
		runPredict(os.Args[2:], false)
	case "serve":
		runPredict(os.Args[2:], true)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  xresult predict -history matches.json [-config config.yaml] [-out predictions.json] [-db xresult.db] [-log xresult.log]")
	fmt.Fprintln(os.Stderr, "  xresult serve   -history matches.json [-config config.yaml] [-db xresult.db] [-addr :8080] [-log xresult.log]")
}

// runOptions holds the flag values shared by the predict and serve
// subcommands
type runOptions struct {
	configPath  *string
	historyPath *string
	outPath     *string
	dbPath      *string
	addr        *string
	logPath     *string
	verbose     *bool
}

// newFlagSet builds the flag set for a subcommand, named after it so
// -h reports the right usage
func newFlagSet(name string) (*flag.FlagSet, *runOptions) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	opts := &runOptions{
		configPath:  fs.String("config", "", "path to YAML configuration, defaults used when empty"),
		historyPath: fs.String("history", "", "path to the match history JSON (required)"),
		outPath:     fs.String("out", "", "path to write the prediction batch JSON"),
		dbPath:      fs.String("db", "", "sqlite database to persist matches and predictions into"),
		addr:        fs.String("addr", ":8080", "listen address for the API server"),
		logPath:     fs.String("log", "", "append log output to this file instead of the console"),
		verbose:     fs.Bool("v", false, "enable debug logging"),
	}
	return fs, opts
}

func runPredict(args []string, serve bool) {
	name := "predict"
	if serve {
		name = "serve"
	}
	fs, opts := newFlagSet(name)
	fs.Parse(args)

	if *opts.verbose {
		logger.SetLevel(logger.DEBUG)
	}
	if *opts.logPath != "" {
		if err := logger.SetLogFile(*opts.logPath); err != nil {
			logger.Fatal("failed to open log file:", err)
		}
	}
	if *opts.historyPath == "" {
		logger.Fatal("missing required -history flag")
	}

	cfg, err := xr.LoadConfig(*opts.configPath)
	if err != nil {
		logger.Fatal("configuration error:", err)
	}

	data, err := os.ReadFile(*opts.historyPath)
	if err != nil {
		logger.Fatal("failed to read history:", err)
	}

	history, err := xr.ParseMatchHistory(data)
	if err != nil {
		logger.Fatal("failed to parse history:", err)
	}
	logger.Info("loaded match history", len(history), "records")

	now := time.Now().UTC()
	predictor := xr.NewPredictor(cfg)
	predictions, err := predictor.Run(history, now)
	if err != nil {
		logger.Fatal("prediction run failed:", err)
	}

	if agg := xr.EvaluateAllPredictions(predictions); agg != nil {
		logger.Info("settled fixtures:", agg.TotalMatches,
			"result accuracy:", agg.ResultAccuracy,
			"exact score accuracy:", agg.ExactScoreAccuracy)
	}

	if *opts.dbPath != "" {
		if err := persist(*opts.dbPath, history, predictions); err != nil {
			logger.Fatal("persistence failed:", err)
		}
		logger.Info("batch persisted to", *opts.dbPath)
	}

	if *opts.outPath != "" {
		output := xr.NewRunOutput(predictions, history, now)
		if err := output.WriteFile(*opts.outPath); err != nil {
			logger.Fatal("failed to write output:", err)
		}
		logger.Info("batch written to", *opts.outPath)
	}

	if serve {
		handler := api.NewAPIHandler(predictions, history, now)
		if err := handler.Serve(*opts.addr); err != nil {
			logger.Fatal("server error:", err)
		}
		return
	}

	if *opts.outPath == "" && *opts.dbPath == "" {
		// Nowhere else to put the results, print them
		output := xr.NewRunOutput(predictions, history, now)
		output.History = nil
		rendered, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			logger.Fatal("failed to render output:", err)
		}
		fmt.Println(string(rendered))
	}
}

func persist(path string, history []*xr.MatchRecord, predictions []*xr.Prediction) error {
	if err := xr.InitDatabase(path); err != nil {
		return err
	}
	defer xr.CloseDatabase()

	objects := make([]xr.Persistable, 0, len(history)+len(predictions))
	for _, m := range history {
		objects = append(objects, m)
	}
	for _, p := range predictions {
		objects = append(objects, p)
	}
	return xr.BulkSave(objects)
}
