package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	motormon "github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "generate":
		err = generateCommand(os.Args[2:])
	case "dashboard":
		err = dashboardCommand(os.Args[2:])
	case "report":
		err = reportCommand(os.Args[2:])
	case "validate":
		err = validateCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		log.Fatalf("motormon %s: %v", cmd, err)
	}
}

func generateCommand(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := fs.String("config", "./data/config.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := motormon.LoadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt, err := motormon.NewRuntime(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	count, err := rt.RunGenerator(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("data stream stopped, total samples sent: %d\n", count)
	return nil
}

func dashboardCommand(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	cfgPath := fs.String("config", "./data/config.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := motormon.LoadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt, err := motormon.NewRuntime(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rt.RunDashboard(ctx)
}

func reportCommand(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := fs.String("config", "./data/config.yaml", "Path to configuration file")
	outDir := fs.String("out", "", "Directory to write the report file into (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := motormon.LoadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt, err := motormon.NewRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = rt.Shutdown(context.Background())
	}()

	doc, err := rt.CompileReport(context.Background())
	if err != nil {
		return err
	}

	if *outDir == "" {
		_, err = os.Stdout.Write(doc.RenderText())
		return err
	}

	path := fmt.Sprintf("%s/%s", *outDir, report.Filename(doc.GeneratedAt))
	if err := os.WriteFile(path, doc.RenderText(), 0o644); err != nil {
		return err
	}
	fmt.Printf("report written to %s\n", path)
	return nil
}

func validateCommand(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "./data/config.yaml", "Path to configuration file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := motormon.LoadConfig(*cfgPath); err != nil {
		return err
	}
	fmt.Printf("config %s looks good\n", *cfgPath)
	return nil
}

func printUsage() {
	fmt.Printf(`Motor Monitoring & Fault Classification CLI

Usage:
  motormon <command> [flags]

Commands:
  generate    Stream synthetic fault verdicts into the shared store
  dashboard   Serve the analytics API consumed by the dashboard UI
  report      Compile the summary report to stdout or a file
  validate    Load and validate a config file without starting anything

Examples:
  motormon generate -config ./data/config.yaml
  motormon dashboard -config ./data/config.yaml
  motormon report -config ./data/config.yaml -out ./reports
`)
}
