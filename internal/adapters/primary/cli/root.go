package cli

import (
	"context"
	"iter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sg-cli/internal/core/domain"
	"sg-cli/internal/core/services"
)

// MetadataUseCase is the set of collection operations the CLI drives.
type MetadataUseCase interface {
	ChangeStage(ctx context.Context, stage uint8) (*services.BatchReport, error)
	ChangeHost(ctx context.Context, host string) (*services.BatchReport, error)
	ChangeMetadataFaded(ctx context.Context, opacity int) (*services.BatchReport, error)
	RestoreImages(ctx context.Context, force bool) (*services.BatchReport, error)
	ShowFrozen(ctx context.Context) iter.Seq2[domain.FrozenImage, error]
	DumpMetadata(ctx context.Context) (string, error)
	InitFrom(ctx context.Context, source string) (*services.BatchReport, error)
	CurrentStage(ctx context.Context) (uint8, error)
}

// Connector opens the store on demand so that help and argument errors never
// need a database. The returned func releases the connection.
type Connector func(ctx context.Context) (MetadataUseCase, func(), error)

type RootOpts struct {
	Verbose bool
	Force   bool

	connect Connector
}

// NewRootCmd builds the sg-cli command tree.
func NewRootCmd(connect Connector) *cobra.Command {
	opts := &RootOpts{connect: connect}

	cmd := &cobra.Command{
		Use:   "sg-cli",
		Short: "CLI to manage the SoulGenesis metadata collection",
		Long: `sg-cli applies bulk changes to the SoulGenesis NFT metadata stored in postgres.

The CONN_STR environment variable (or a .env file) must hold the postgres
connection string.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print a progress line for every record")
	cmd.PersistentFlags().BoolVarP(&opts.Force, "force", "f", false, "include frozen records where the command allows it")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage(err)
	})

	cmd.AddCommand(
		newChangeStageCmd(opts),
		newChangeHostCmd(opts),
		newChangeMetadataFadedCmd(opts),
		newRestoreImagesCmd(opts),
		newShowFrozenCmd(opts),
		newDumpMetadataCmd(opts),
		newInitFromCmd(opts),
		newShowStageCmd(opts),
	)

	return cmd
}

// withUseCase opens the store for the duration of fn.
func (o *RootOpts) withUseCase(ctx context.Context, fn func(uc MetadataUseCase) error) error {
	uc, release, err := o.connect(ctx)
	if err != nil {
		return err
	}
	if release != nil {
		defer release()
	}
	return fn(uc)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(cobra.ExactArgs(n)(cmd, args))
	}
}
