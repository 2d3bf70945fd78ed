package cli

import (
	"crypto/rand"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/google/uuid"
	"github.com/mr-shifu/evss/pkg/evss"
	"github.com/spf13/cobra"
)

func newDealCmd(a *app) *cobra.Command {
	var (
		secret string
		points string
	)
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Share a secret and write the public parameters, commitment and shares",
		Long: `Deal a secret as shares at the given points. Without --points, shares are
issued at 1..degree. The output directory receives params.json, commitment.json,
one share-<n>.json per point and dealer.cbor with the secret dealer state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			group := a.scheme.Group()
			s, err := parseScalar(group, secret)
			if err != nil {
				return err
			}
			xs, err := parseScalars(group, points)
			if err != nil {
				return err
			}
			if len(xs) == 0 {
				for i := 1; i <= a.cfg.Degree; i++ {
					xs = append(xs, group.NewScalar().SetNat(new(saferith.Nat).SetUint64(uint64(i))))
				}
			}

			id, err := a.manager.CreateSharing(a.cfg.Degree, s, rand.Reader)
			if err != nil {
				return err
			}
			shares, err := a.manager.Shares(id, xs, rand.Reader)
			if err != nil {
				return err
			}
			if err := a.writeSession(id); err != nil {
				return err
			}
			for i, share := range shares {
				path, err := outputPath(a.cfg.Output, fmt.Sprintf("share-%d.json", i+1))
				if err != nil {
					return err
				}
				if err := writeJSON(path, share); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d shares written to %s\n", id, len(shares), a.cfg.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "secret to share (decimal or 0x hex)")
	cmd.Flags().StringVar(&points, "points", "", "comma separated evaluation points")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var paramsFile, commitmentFile string
	cmd := &cobra.Command{
		Use:   "verify SHARE...",
		Short: "Verify shares against the public commitment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pp, pc, err := a.readPublic(paramsFile, commitmentFile)
			if err != nil {
				return err
			}
			shares, err := a.readShares(args)
			if err != nil {
				return err
			}
			verdicts, err := a.manager.EVSS().CheckShares(pp, pc, shares, rand.Reader)
			if err != nil {
				return err
			}
			return report(cmd, args, verdicts)
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", fileParams, "public parameters file")
	cmd.Flags().StringVar(&commitmentFile, "commitment", fileCommitment, "public commitment file")
	return cmd
}

func newReconstructCmd(a *app) *cobra.Command {
	var paramsFile string
	cmd := &cobra.Command{
		Use:   "reconstruct SHARE...",
		Short: "Reconstruct the secret from at least degree shares",
		Long: `Reconstruct interpolates the secret at zero. Shares are not verified; run
verify first. The secret is printed as the hex encoding of the scalar.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pp := evss.EmptyPublicParams(a.scheme)
			if err := readJSON(paramsFile, pp); err != nil {
				return err
			}
			shares, err := a.readShares(args)
			if err != nil {
				return err
			}
			secret, err := a.manager.EVSS().Reconstruct(pp, shares)
			if err != nil {
				return err
			}
			out, err := formatScalar(secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", fileParams, "public parameters file")
	return cmd
}

// writeSession writes the public files and the dealer state of session id.
func (a *app) writeSession(id uuid.UUID) error {
	pp, pc, err := a.manager.Public(id)
	if err != nil {
		return err
	}
	state, err := a.manager.Export(id)
	if err != nil {
		return err
	}
	for name, v := range map[string]interface{}{fileParams: pp, fileCommitment: pc} {
		path, err := outputPath(a.cfg.Output, name)
		if err != nil {
			return err
		}
		if err := writeJSON(path, v); err != nil {
			return err
		}
	}
	path, err := outputPath(a.cfg.Output, fileDealer)
	if err != nil {
		return err
	}
	return writeSecret(path, state)
}

func (a *app) readPublic(paramsFile, commitmentFile string) (*evss.PublicParams, *evss.PublicCommitment, error) {
	pp := evss.EmptyPublicParams(a.scheme)
	if err := readJSON(paramsFile, pp); err != nil {
		return nil, nil, err
	}
	pc := evss.EmptyPublicCommitment(a.scheme)
	if err := readJSON(commitmentFile, pc); err != nil {
		return nil, nil, err
	}
	return pp, pc, nil
}

func (a *app) readShares(files []string) ([]*evss.Share, error) {
	shares := make([]*evss.Share, len(files))
	for i, f := range files {
		share := evss.EmptyShare(a.scheme)
		if err := readJSON(f, share); err != nil {
			return nil, err
		}
		shares[i] = share
	}
	return shares, nil
}

func report(cmd *cobra.Command, names []string, verdicts []bool) error {
	rejected := 0
	for i, ok := range verdicts {
		verdict := "valid"
		if !ok {
			verdict = "INVALID"
			rejected++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", names[i], verdict)
	}
	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRejected, rejected, len(verdicts))
	}
	return nil
}
