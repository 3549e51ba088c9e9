package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openbindings/binding-go/manifest"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate binding manifests",
		Long: `Validate checks each manifest and initializes every binding against the
type it names. All problems of a manifest are reported, not just the first.

With --strict, unknown fields and manifest versions outside the supported
range are problems too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				problems, err := a.validateFile(path, strict)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: error: %v\n", path, err)
					continue
				}
				if len(problems) > 0 {
					failed++
					fmt.Fprintf(out, "%s: invalid\n", path)
					for _, p := range problems {
						fmt.Fprintf(out, "  - %s\n", p)
					}
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d manifests failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject unknown fields and unsupported versions")
	return cmd
}

// validateFile returns the validation problems of the manifest at path, or an
// error if it could not be loaded.
func (a *app) validateFile(path string, strict bool) ([]string, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	err = m.Validate(a.validateOptions(strict)...)
	var ve *manifest.ValidationError
	if errors.As(err, &ve) {
		a.logger.Debug("manifest invalid", zap.String("path", path), zap.Int("problems", len(ve.Problems)))
		return ve.Problems, nil
	}
	return nil, err
}
