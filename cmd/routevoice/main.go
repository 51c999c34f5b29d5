package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/routevoice/routevoice/internal/capture"
	"github.com/routevoice/routevoice/internal/config"
	"github.com/routevoice/routevoice/internal/extractor"
	"github.com/routevoice/routevoice/internal/format"
	"github.com/routevoice/routevoice/internal/notify"
	"github.com/routevoice/routevoice/internal/pipeline"
	"github.com/routevoice/routevoice/internal/recording"
	"github.com/routevoice/routevoice/internal/transcriber"
	"github.com/routevoice/routevoice/internal/tui"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "routevoice",
	Short: "Speak a US highway route, get it back as structured data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func init() {
	rootCmd.AddCommand(
		recordCmd(),
		parseCmd(),
		sampleCmd(),
		expandCmd(),
		versionCmd(),
	)
}

// signalContext cancels on interrupt so the microphone is always
// released.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline wires the full voice path from the configuration.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, func(), error) {
	recorder := recording.NewRecorder(cfg.RecordingConfig())
	session, err := capture.New(cfg.CaptureConfig(), recorder)
	if err != nil {
		return nil, nil, err
	}

	t, err := transcriber.NewGoogle(ctx, cfg.TranscriberConfig())
	if err != nil {
		return nil, nil, err
	}

	e, err := extractor.NewOpenAI(cfg.ExtractorConfig())
	if err != nil {
		t.Close()
		return nil, nil, err
	}

	p, err := pipeline.New(cfg.PipelineConfig(), session, t, e, notify.New(cfg.NotifyKind()))
	if err != nil {
		t.Close()
		return nil, nil, err
	}
	return p, func() { t.Close() }, nil
}

// buildTextPipeline wires only the extraction stage; the capture and
// transcription seats are filled with stubs that are never invoked.
func buildTextPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	e, err := extractor.NewOpenAI(cfg.ExtractorConfig())
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg.PipelineConfig(), noCapture{}, noTranscribe{}, e, notify.New(cfg.NotifyKind()))
}

type noCapture struct{}

func (noCapture) Capture(context.Context) (capture.Clip, error) {
	return capture.Clip{}, errors.New("voice capture not configured for this command")
}

type noTranscribe struct{}

func (noTranscribe) Transcribe(context.Context, []byte) (transcriber.Result, error) {
	return transcriber.Result{}, errors.New("transcription not configured for this command")
}

func printResult(result *pipeline.Result) {
	if result.LowConfidence {
		fmt.Println("Warning: transcription confidence was low; verify the output.")
	}
	if result.Record != nil {
		if corrected := format.RenderCorrected(result.Record); corrected != "" {
			fmt.Println(corrected)
		}
	}
	fmt.Println(result.Output)
}

// runInteractive is the menu loop. The config manager keeps watching
// the file so edits apply between runs without restarting.
func runInteractive() error {
	ctx, cancel := signalContext()
	defer cancel()

	manager, err := config.NewManager()
	if err != nil {
		return err
	}
	if err := manager.StartWatching(ctx); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer manager.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		choice, err := tui.Menu()
		if err != nil {
			return err
		}

		switch choice.Action {
		case tui.ActionExit:
			return nil

		case tui.ActionRecord:
			if err := runVoiceOnce(ctx, manager.GetConfig()); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case tui.ActionSample:
			if err := runTextOnce(ctx, manager.GetConfig(), choice.SampleText); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case tui.ActionCustom:
			text, err := tui.CustomText()
			if err != nil {
				return err
			}
			if text == "" {
				continue
			}
			if err := runTextOnce(ctx, manager.GetConfig(), text); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

func runVoiceOnce(ctx context.Context, cfg *config.Config) error {
	p, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := p.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoSpeech) {
			fmt.Println("No speech detected. Try again closer to the microphone.")
			return nil
		}
		return err
	}
	printResult(result)
	return nil
}

func runTextOnce(ctx context.Context, cfg *config.Config, text string) error {
	p, err := buildTextPipeline(cfg)
	if err != nil {
		return err
	}
	result, err := p.RunText(ctx, text)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func recordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Record one route description and parse it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runVoiceOnce(ctx, cfg)
		},
	}
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a route description given as text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runTextOnce(ctx, cfg, strings.Join(args, " "))
		},
	}
}

func sampleCmd() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Parse one of the built-in sample routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			samples := tui.Samples()
			if index < 0 || index >= len(samples) {
				return fmt.Errorf("sample index out of range: %d (have %d samples)", index, len(samples))
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Printf("Input: %s\n", samples[index].Text)
			return runTextOnce(ctx, cfg, samples[index].Text)
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "which sample to parse")
	return cmd
}

func expandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <text>",
		Short: "Expand route abbreviations (state codes, directions) in text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(format.Expand(strings.Join(args, " ")))
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("routevoice %s\n", version)
			return nil
		},
	}
}
