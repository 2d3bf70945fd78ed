package cli

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/mr-shifu/evss/pkg/evss"
	"github.com/spf13/cobra"
)

func newAccumulateCmd(a *app) *cobra.Command {
	var credentials string
	cmd := &cobra.Command{
		Use:   "accumulate",
		Short: "Commit a credential set as an accumulator",
		Long: `Accumulate commits to the credentials as the roots of a polynomial. At most
degree-1 credentials fit. The output directory receives params.json,
commitment.json and dealer.cbor.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := parseScalars(a.scheme.Group(), credentials)
			if err != nil {
				return err
			}
			id, err := a.manager.CreateAccumulator(a.cfg.Degree, creds, rand.Reader)
			if err != nil {
				return err
			}
			if err := a.writeSession(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d credentials accumulated in %s\n", id, len(creds), a.cfg.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&credentials, "credentials", "", "comma separated credentials")
	return cmd
}

func newWitnessCmd(a *app) *cobra.Command {
	var dealerFile, credential, out string
	cmd := &cobra.Command{
		Use:   "witness",
		Short: "Create a membership witness for a credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := os.ReadFile(dealerFile)
			if err != nil {
				return err
			}
			id, err := a.manager.Import(state)
			if err != nil {
				return err
			}
			defer func() {
				a.log.MaybeError("failed to drop session", a.manager.Delete(id))
			}()

			c, err := parseScalar(a.scheme.Group(), credential)
			if err != nil {
				return err
			}
			w, err := a.manager.Witness(id, c, rand.Reader)
			if err != nil {
				return err
			}
			if !w.Value.IsZero() {
				a.log.Warn("credential is not a member, witness will not verify")
			}
			return writeJSON(out, w)
		},
	}
	cmd.Flags().StringVar(&dealerFile, "dealer", fileDealer, "dealer state file")
	cmd.Flags().StringVar(&credential, "credential", "", "credential to open")
	cmd.Flags().StringVar(&out, "out", "witness.json", "witness output file")
	_ = cmd.MarkFlagRequired("credential")
	return cmd
}

func newCheckWitnessCmd(a *app) *cobra.Command {
	var paramsFile, commitmentFile string
	cmd := &cobra.Command{
		Use:   "check-witness WITNESS...",
		Short: "Check membership witnesses against the accumulator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pp, pc, err := a.readPublic(paramsFile, commitmentFile)
			if err != nil {
				return err
			}
			verdicts := make([]bool, len(args))
			for i, f := range args {
				w := evss.EmptyShare(a.scheme)
				if err := readJSON(f, w); err != nil {
					return err
				}
				ok, err := a.manager.Accumulator().Check(pp, pc, w, rand.Reader)
				if err != nil {
					return err
				}
				verdicts[i] = ok
			}
			return report(cmd, args, verdicts)
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", fileParams, "public parameters file")
	cmd.Flags().StringVar(&commitmentFile, "commitment", fileCommitment, "public commitment file")
	return cmd
}
