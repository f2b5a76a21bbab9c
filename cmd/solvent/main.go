// Command solvent supervises solver scripts, streams and stores their
// output, and generates analysis reports from compressed logs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ktsuchiya/solvent"
	"github.com/ktsuchiya/solvent/internal/analyze"
	"github.com/ktsuchiya/solvent/internal/config"
	"github.com/ktsuchiya/solvent/internal/digest"
	solmcp "github.com/ktsuchiya/solvent/internal/mcp"
	"github.com/ktsuchiya/solvent/internal/report"
	"github.com/ktsuchiya/solvent/internal/supervisor"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("solvent: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "analyze":
		err = analyzeMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(solvent.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "solvent: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: solvent <command> [flags] [args]

Commands:
  run         Run a solver script and print its sanitized output
  analyze     Compress a log file and generate an analysis report
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

Use "solvent <command> -h" for command-specific flags.`)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func loadConfig() (*config.Config, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining workspace: %w", err)
	}
	cfg, err := config.Load(workspace)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verboseFlag := fs.Bool("v", false, "verbose logging")
	liveFlag := fs.Bool("live", true, "stream output lines to stderr as they arrive")
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) == 0 {
		return errors.New("run: script path is required")
	}
	scriptPath := rest[0]
	argString := strings.Join(rest[1:], " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(*verboseFlag)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sup := &supervisor.Supervisor{
		Registry: supervisor.NewRegistry(),
		Logger:   logger,
		Banners:  cfg.Banners(),
	}
	if *liveFlag {
		sup.Sink = &supervisor.WriterSink{W: os.Stderr}
	}

	res, runErr := sup.Run(cfg.CommandPrefix(), scriptPath, argString)
	if res == nil {
		return runErr
	}

	fmt.Print(res.Display)
	if res.Display != "" && res.Display[len(res.Display)-1] != '\n' {
		fmt.Println()
	}

	if runErr != nil {
		var ee *supervisor.ExitError
		if errors.As(runErr, &ee) {
			fmt.Fprint(os.Stderr, ee.Error())
			os.Exit(ee.Code)
		}
		return runErr
	}
	return nil
}

// --- analyze ---

func analyzeMain(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	focusFlag := fs.String("focus", "", "extra directive appended to the analysis focus")
	instructionFlag := fs.String("instruction", "", "replaces the built-in analysis instruction")
	modelFlag := fs.String("model", "", "model identifier override")
	dryRunFlag := fs.Bool("dry-run", false, "print the assembled prompt instead of calling the API")
	verboseFlag := fs.Bool("v", false, "verbose logging")
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		return errors.New(`analyze: exactly one log file argument is required ("-" reads stdin)`)
	}

	raw, err := readInput(rest[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(*verboseFlag)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if *dryRunFlag {
		d := digest.Compress(raw, cfg.DigestSettings())
		fmt.Print(digest.AssemblePrompt(*instructionFlag, *focusFlag, d, cfg.MaxPromptChars()))
		return nil
	}

	model := *modelFlag
	if model == "" {
		model = cfg.Model()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	an, err := analyze.New(ctx, os.Getenv(cfg.APIKeyEnv()), model, cfg.DigestSettings(), cfg.MaxPromptChars(), logger)
	if err != nil {
		return err
	}
	text, err := an.Analyze(ctx, raw, *focusFlag, *instructionFlag)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	verboseFlag := fs.Bool("v", false, "verbose logging")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(solmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return serve(ctx, *httpAddr, *verboseFlag)
}

func serve(ctx context.Context, httpAddr string, verbose bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	disk := report.NewDiskStore()
	store := report.NewLRUStore(5, disk)

	sup := &supervisor.Supervisor{
		Registry: supervisor.NewRegistry(),
		Sink:     &supervisor.LogSink{L: logger},
		Logger:   logger,
		Banners:  cfg.Banners(),
	}

	server := solmcp.NewServer(cfg, sup, store, solmcp.WithLogger(logger))

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
