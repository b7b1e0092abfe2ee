// licensectl 디바이스에서 라이선스를 활성화하고 확인하는 명령줄 도구
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devicelicense/client"
	"devicelicense/config"
	"devicelicense/logger"
)

const usage = `usage: licensectl [flags] <command> [args]

commands:
  activate <license-key>   activate this device
  check                    validate once (grace period applies when offline)
  deactivate               release this device's activation
  watch                    re-check periodically until interrupted
  update-check             ask the server for a newer release
  fingerprint              print this device's fingerprint

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("licensectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "license server base URL")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "local license state file")
	fs.DurationVar(&cfg.CheckInterval, "interval", cfg.CheckInterval, "re-check interval for watch")
	label := fs.String("label", "", "device label sent on activate")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	level := logger.WARN
	if *verbose {
		level = logger.DEBUG
	}
	if err := logger.Initialize(logger.Config{Level: level, Console: stderr, Prefix: "licensectl"}); err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard := client.NewGuard(
		client.NewAPIClient(cfg.ServerURL, &http.Client{Timeout: cfg.Timeout}),
		client.NewFileStateStore(cfg.StatePath),
		client.GuardOptions{GraceDays: cfg.GraceDays, AppVersion: cfg.AppVersion},
	)

	switch cmd := fs.Arg(0); cmd {
	case "activate":
		if fs.NArg() < 2 {
			fmt.Fprintln(stderr, "activate requires a license key")
			return 2
		}
		var deviceLabel *string
		if *label != "" {
			deviceLabel = label
		}
		res, err := guard.Activate(ctx, fs.Arg(1), client.DeviceFingerprint(), deviceLabel)
		if err != nil {
			fmt.Fprintf(stderr, "activation failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "activated: license=%s activation=%s max_activations=%d\n",
			res.License.ID, res.Activation.ID, res.License.MaxActivations)
		return 0

	case "check":
		res, err := guard.Check(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "check failed: %v\n", err)
			return 1
		}
		printResult(stdout, res)
		if !res.Valid {
			return 1
		}
		return 0

	case "deactivate":
		if err := guard.Deactivate(ctx); err != nil {
			fmt.Fprintf(stderr, "deactivation failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, "deactivated")
		return 0

	case "watch":
		guard.Run(ctx, cfg.CheckInterval, func(res client.CheckResult) {
			printResult(stdout, res)
		})
		if errors.Is(ctx.Err(), context.Canceled) {
			return 0
		}
		return 1

	case "update-check":
		api := client.NewAPIClient(cfg.ServerURL, &http.Client{Timeout: cfg.Timeout})
		res, err := api.LatestRelease(ctx, client.Platform(), cfg.AppVersion)
		if err != nil {
			fmt.Fprintf(stderr, "update check failed: %v\n", err)
			return 1
		}
		if !res.UpdateAvailable {
			fmt.Fprintf(stdout, "up to date (%s)\n", cfg.AppVersion)
			return 0
		}
		fmt.Fprintf(stdout, "update available: %s -> %s\n%s\n", cfg.AppVersion, res.LatestVersion, res.DownloadURL)
		if res.ReleaseNotes != "" {
			fmt.Fprintln(stdout, res.ReleaseNotes)
		}
		return 0

	case "fingerprint":
		fmt.Fprintln(stdout, client.DeviceFingerprint())
		return 0

	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
}

func printResult(w io.Writer, res client.CheckResult) {
	state := "invalid"
	if res.Valid {
		state = "valid"
	}
	line := fmt.Sprintf("%s %s", res.CheckedAt.Format(time.RFC3339), state)
	if res.Reason != "" {
		line += ": " + res.Reason
	}
	if res.ExpiresAt != nil {
		line += fmt.Sprintf(" (expires %s)", res.ExpiresAt.Format("2006-01-02"))
	}
	fmt.Fprintln(w, line)
}
