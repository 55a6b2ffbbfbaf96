// Command responsegen implements response.Responder for error taxonomies
// and wraps functions marked //response:handler in the JSON envelope.
//
// Typical use from a package directory:
//
//	//go:generate go run github.com/nimeshabuddhika/donation-service/services/responsegen/cmd --type=BillingError
package main

import (
	"errors"
	"os"

	"github.com/nimeshabuddhika/donation-service/pkg"
	"github.com/nimeshabuddhika/donation-service/pkg/codegen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	if err := newRootCmd(logger, os.Args[1:]).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger, args []string) *cobra.Command {
	var opts codegen.Options

	cmd := &cobra.Command{
		Use:          "responsegen [dir]",
		Short:        "Generate response rules and envelope wrappers for a package",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			dir := "."
			if len(positional) == 1 {
				dir = positional[0]
			}
			opts.Args = args

			out, err := codegen.WriteFile(dir, opts)
			if err != nil {
				var d *codegen.Diagnostic
				if errors.As(err, &d) {
					logger.Error("generation failed",
						zap.String("dir", dir),
						zap.String("decl", d.Decl),
						zap.String("pos", d.Pos.String()),
						zap.Error(err),
					)
				} else {
					logger.Error("generation failed", zap.String("dir", dir), zap.Error(err))
				}
				return err
			}
			logger.Info("generated", zap.String("file", out))
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.Flags().StringSliceVarP(&opts.Types, "type", "t", nil, "comma-separated error taxonomy type names")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", codegen.DefaultOutput, "output file name inside the package directory")
	cmd.Flags().StringVar(&opts.ResponsePackage, "response-pkg", codegen.DefaultResponsePackage, "import path of the runtime response package")
	return cmd
}
