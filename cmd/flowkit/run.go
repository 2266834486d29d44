package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/effective-digital/flowkit"
	"github.com/effective-digital/flowkit/internal/logging"
	"github.com/effective-digital/flowkit/pkg/codec"
	"github.com/effective-digital/flowkit/pkg/domain"
	"github.com/effective-digital/flowkit/pkg/ports"
)

// scriptStep is one entry of the scripted flow: the instruction the stub
// engine emits, the result the scripted handler resolves with, and the
// process instance the stub returns on submit.
type scriptStep struct {
	Step   string            `yaml:"step"`
	Params map[string]string `yaml:"params,omitempty"`
	Result map[string]string `yaml:"result,omitempty"`
	Next   struct {
		ID     string `yaml:"id"`
		Action string `yaml:"action"`
	} `yaml:"next"`
}

type script struct {
	ProcessID string       `yaml:"process_id"`
	Steps     []scriptStep `yaml:"steps"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a scripted flow against an in-process stub engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("script")
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		sc, err := loadScript(path)
		if err != nil {
			return err
		}
		return runScript(cmd, sc, logger)
	},
}

func init() {
	runCmd.Flags().String("script", "flow.yaml", "Path to the scripted flow definition")
	rootCmd.AddCommand(runCmd)
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("script %s defines no steps", path)
	}
	if sc.ProcessID == "" {
		sc.ProcessID = "demo-process"
	}
	return &sc, nil
}

func runScript(cmd *cobra.Command, sc *script, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng, err := flowkit.New(&printPresenter{out: out}, flowkit.WithLogger(logger))
	if err != nil {
		return err
	}

	for _, st := range sc.Steps {
		st := st
		eng.Registry().Register(st.Step, scriptedHandler(out, st))
	}

	eng.Bus().SetListener(func(outcome domain.FlowOutcome) {
		switch outcome.Kind() {
		case domain.OutcomePresentFlow:
			inst := outcome.Instance()
			fmt.Fprintf(out, "present flow: id=%s action=%s\n", inst.ID, inst.Action)
		case domain.OutcomeSessionEnded:
			fmt.Fprintln(out, "session ended")
		}
	})

	for i, st := range sc.Steps {
		payload, err := encodeInstruction(st)
		if err != nil {
			return err
		}

		next := &domain.ProcessInstance{ID: st.Next.ID, Action: st.Next.Action}
		if next.ID == "" {
			next.ID = fmt.Sprintf("%s-%d", sc.ProcessID, i+1)
		}

		err = eng.Continue(ctx, flowkit.Instruction{
			TransitionID: fmt.Sprintf("t-%d", i+1),
			ProcessID:    sc.ProcessID,
			Payload:      payload,
			Submit: func(ctx context.Context, transitionID, processID string, result []byte) (*domain.ProcessInstance, error) {
				fmt.Fprintf(out, "submitted %s for %s\n", transitionID, processID)
				return next, nil
			},
		})
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Step, err)
		}
	}

	eng.Bus().EndSession()
	return nil
}

// encodeInstruction builds the base64 JSON payload the remote engine would
// have sent for this step.
func encodeInstruction(st scriptStep) ([]byte, error) {
	fields := map[string]string{codec.StepKey: st.Step}
	for k, v := range st.Params {
		fields[k] = v
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode instruction: %w", err)
	}
	return []byte(base64.StdEncoding.EncodeToString(raw)), nil
}

// scriptedHandler resolves with the scripted result map.
func scriptedHandler(out io.Writer, st scriptStep) ports.StepHandlerFunc {
	return func(ctx context.Context, payload []byte) (map[string]string, error) {
		fmt.Fprintf(out, "running step %s\n", st.Step)
		if st.Result == nil {
			return map[string]string{"": ""}, nil
		}
		return st.Result, nil
	}
}

// printPresenter narrates UI transitions on the command output.
type printPresenter struct {
	out io.Writer
}

func (p *printPresenter) DismissTop(ctx context.Context) error {
	fmt.Fprintln(p.out, "dismissing current screen")
	return nil
}

func (p *printPresenter) ShowInterstitial(ctx context.Context) error {
	fmt.Fprintln(p.out, "showing interstitial")
	return nil
}

func (p *printPresenter) HideInterstitial(ctx context.Context) error {
	fmt.Fprintln(p.out, "hiding interstitial")
	return nil
}
