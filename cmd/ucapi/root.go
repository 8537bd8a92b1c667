package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/internal/infrastructure/config"
	"github.com/nerrad567/ucapi/internal/infrastructure/logging"
	"github.com/nerrad567/ucapi/schema"
	"github.com/nerrad567/ucapi/ws"
)

// app is the state shared by all commands once the configuration is loaded.
type app struct {
	configPath string
	strict     bool

	cfg *config.Config
	log *logging.Logger
	out io.Writer
	in  io.Reader
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, in: os.Stdin, log: logging.Default()}

	root := &cobra.Command{
		Use:           "ucapi",
		Short:         "Remote Two integration and core API model tool",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("UCAPI_CONFIG"), "configuration file (env UCAPI_CONFIG)")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "reject unknown fields in every payload")

	root.AddCommand(
		typesCmd(a),
		rulesCmd(a),
		driftCmd(a),
		validateCmd(a),
		dbCmd(a),
		lineProtocolCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging, version)
	if a.configPath != "" {
		a.log.Debug("configuration loaded", "path", a.configPath)
	}
	return nil
}

// policyFor returns the decode policy for a registered type, forced to
// strict by --strict or decode.strict.
func (a *app) policyFor(name string) (codec.Policy, error) {
	if a.forceStrict() {
		return codec.Strict, nil
	}
	return schema.Policy(name)
}

func (a *app) forceStrict() bool {
	return a.strict || (a.cfg != nil && a.cfg.Decode.Strict)
}

// decodePayload decodes the msg_data of m, strictly when forced.
func (a *app) decodePayload(m ws.Message) (any, error) {
	if a.forceStrict() {
		return schema.DecodePayloadPolicy(m, codec.Strict)
	}
	return schema.DecodePayload(m)
}

// readInput reads a payload file, or stdin for "-", and converts HuJSON
// (comments, trailing commas) to standard JSON.
func (a *app) readInput(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return bytes.TrimSpace(std), nil
}
