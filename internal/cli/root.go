package cli

import (
	"errors"
	"io"

	"github.com/mr-shifu/evss/internal/config"
	"github.com/mr-shifu/evss/pkg/cryptosuite/sw/pedersenpc"
	"github.com/mr-shifu/evss/pkg/dealer"
	"github.com/mr-shifu/evss/pkg/keystore"
	"github.com/mr-shifu/evss/pkg/logging"
	"github.com/mr-shifu/evss/pkg/metrics"
	"github.com/mr-shifu/evss/pkg/vault"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrRejected is returned when at least one share or witness fails verification.
var ErrRejected = errors.New("verification failed")

// app holds what every command needs once the configuration is loaded.
type app struct {
	v           *viper.Viper
	configFile  string
	metricsFile string

	cfg      *config.Config
	log      *logging.Logger
	registry *prometheus.Registry
	scheme   *pedersenpc.Scheme
	manager  *dealer.Manager
}

// NewRootCommand builds the evss command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "evss",
		Short: "Evaluation-based verifiable secret sharing and credential accumulators",
		Long: `evss deals secrets as verifiable shares and commits credential sets as
accumulators. Public values are exchanged as JSON files. Dealer state, which
contains the secret polynomial, is written as CBOR and must be kept private.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.metricsFile == "" {
				return nil
			}
			return prometheus.WriteToTextfile(a.metricsFile, a.registry)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (YAML)")
	flags.String("curve", "secp256k1", "curve (secp256k1, edwards25519)")
	flags.IntP("degree", "t", 4, "shares needed to reconstruct, or accumulator capacity + 1")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.StringP("output", "o", ".", "output directory")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	_ = a.v.BindPFlag(config.KeyCurve, flags.Lookup("curve"))
	_ = a.v.BindPFlag(config.KeyDegree, flags.Lookup("degree"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyOutput, flags.Lookup("output"))

	rootCmd.AddCommand(
		newDealCmd(a),
		newVerifyCmd(a),
		newReconstructCmd(a),
		newAccumulateCmd(a),
		newWitnessCmd(a),
		newCheckWitnessCmd(a),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	log, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.registry = prometheus.NewRegistry()
	a.scheme = scheme
	a.manager = dealer.NewManager(
		scheme,
		keystore.NewInMemoryKeystore(vault.NewInMemoryVault()),
		dealer.WithLogger(log),
		dealer.WithMetrics(metrics.New(a.registry)),
	)
	return nil
}
