package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"typeset/config"
	"typeset/font"
	"typeset/hyph"
	"typeset/layout"
	"typeset/layoutio"
	"typeset/metadata"
	"typeset/script"
	"typeset/state"
	"typeset/style"
	"typeset/style/cssparse"
)

const appName = "typeset"

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()))
	}
	env.RestoreStdLog()
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	return
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "lays out a structured document onto paginated pages",
		Version:         runtime.Version(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "produces a debug report archive alongside normal output"},
		},
		Commands: []*cli.Command{
			{
				Name:         "layout",
				Usage:        "parses a script document, resolves its style and lays it out onto pages",
				OnUsageError: usageErrorHandler,
				Action:       runLayout,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "style sheet `FILE` to apply on top of the built-in defaults"},
					&cli.StringFlag{Name: "metadata", Aliases: []string{"m"}, Usage: "document metadata `FILE` (TOML)"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite an existing destination file"},
				},
				ArgsUsage: "SOURCE DESTINATION",
			},
			{
				Name:         "dumpconfig",
				Usage:        "dumps either default or actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	fname := cmd.Args().Get(0)

	var (
		err  error
		data []byte
	)
	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	env.Log.Info("Configuration written", zap.String("file", fname))
	return nil
}

// runLayout reads SOURCE as a script document, resolves its metadata
// and style, runs it through the layout driver, and writes the
// resulting page layout as debug XML to DESTINATION.
func runLayout(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log

	source := cmd.Args().Get(0)
	destination := cmd.Args().Get(1)
	if source == "" || destination == "" {
		return fmt.Errorf("layout requires SOURCE and DESTINATION arguments")
	}
	if _, err := os.Stat(destination); err == nil && !cmd.Bool("overwrite") {
		return fmt.Errorf("destination %q already exists, pass --overwrite to replace it", destination)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("unable to read source: %w", err)
	}

	md := metadata.Default()
	if mpath := cmd.String("metadata"); mpath != "" {
		raw, err := os.ReadFile(mpath)
		if err != nil {
			return fmt.Errorf("unable to read metadata: %w", err)
		}
		if md, err = metadata.Read(raw, log); err != nil {
			return fmt.Errorf("unable to parse metadata: %w", err)
		}
	}

	parser := script.NewParser(log)
	tree, err := parser.Parse(data)
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	styles := style.NewDefaultRegistry()
	if spath := cmd.String("style"); spath != "" {
		raw, err := os.ReadFile(spath)
		if err != nil {
			return fmt.Errorf("unable to read style sheet: %w", err)
		}
		sheet, err := cssparse.NewParser(log).Parse(raw)
		if err != nil {
			return fmt.Errorf("unable to parse style sheet: %w", err)
		}
		sheet.Populate(styles)
	}

	// fonts.default_path is a required, validated configuration field
	// (see config.FontsConfig): the font manager has no built-in face
	// of its own and refuses to guess at one from the host's font
	// layout, so a missing or unreadable path is a startup error.
	if env.Cfg == nil || env.Cfg.Fonts.DefaultPath == "" {
		return fmt.Errorf("configuration is missing fonts.default_path")
	}
	defaultFontBytes, err := os.ReadFile(env.Cfg.Fonts.DefaultPath)
	if err != nil {
		return fmt.Errorf("unable to read default font %q: %w", env.Cfg.Fonts.DefaultPath, err)
	}

	fonts, err := font.NewRegistry(defaultFontBytes, nil, nil, log)
	if err != nil {
		return fmt.Errorf("unable to prepare font registry: %w", err)
	}

	var hyphenator *hyph.Hyphenator
	if env.Cfg == nil || env.Cfg.Layout.EnableHyphenation {
		hyphenator = hyph.New(md.Language, log)
	}

	opts := layout.DefaultOptions()
	if env.Cfg != nil && env.Cfg.Layout.MaxPasses > 0 {
		opts.MaxPasses = env.Cfg.Layout.MaxPasses
	}

	result, err := layout.Layout(tree, styles, fonts, hyphenator, log, opts)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	out := layoutio.Export(result, layoutio.Options{Fonts: fonts})
	out.Indent(2)
	if err := out.WriteToFile(destination); err != nil {
		return fmt.Errorf("unable to write layout: %w", err)
	}

	log.Info("Layout complete",
		zap.Int("pages", len(result.Pages())),
		zap.String("destination", destination))
	return nil
}
