package cli

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sg-cli/internal/core/services"
)

func newChangeStageCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "change-stage <stage>",
		Short: "Changes the stage of every unfrozen record (1..5)",
		Args:  exactArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			stage, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return usage(fmt.Errorf("invalid stage %q: must be an integer between 0 and 255", args[0]))
			}

			log.Infof("changing stage to: %d", stage)
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				report, err := uc.ChangeStage(cmd.Context(), uint8(stage))
				return printBatch(cmd, "changing stage", report, err)
			})
		}),
	}
}

func newChangeHostCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "change-host <host>",
		Short:   "Changes the host for every image",
		Example: "  sg-cli change-host media.images.example.com",
		Args:    exactArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			log.Infof("changing host to: %s", args[0])
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				report, err := uc.ChangeHost(cmd.Context(), args[0])
				return printBatch(cmd, "changing host", report, err)
			})
		}),
	}
}

func newChangeMetadataFadedCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "change-metadata-faded <opacity>",
		Short: "Changes unfrozen images to their faded variant (35, 45 and 100 accepted)",
		Args:  exactArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			opacity, err := strconv.Atoi(args[0])
			if err != nil {
				return usage(fmt.Errorf("invalid opacity %q: must be 35, 45 or 100", args[0]))
			}

			log.Infof("changing metadata image url to images with opacity: %d", opacity)
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				report, err := uc.ChangeMetadataFaded(cmd.Context(), opacity)
				return printBatch(cmd, "changing metadata to faded images", report, err)
			})
		}),
	}
}

func newRestoreImagesCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "restore-images",
		Short: "Restores images to images/{stage}/{edition}.jpg (--force includes frozen records)",
		Args:  exactArgs(0),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			log.WithField("force", opts.Force).Info("restoring images based on edition and stage")
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				report, err := uc.RestoreImages(cmd.Context(), opts.Force)
				return printBatch(cmd, "restoring images", report, err)
			})
		}),
	}
}

func newShowFrozenCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show-frozen",
		Short: "Shows all frozen images",
		Args:  exactArgs(0),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				if err := printFrozen(cmd.OutOrStdout(), uc.ShowFrozen(cmd.Context())); err != nil {
					return fmt.Errorf("showing frozen images: %w", err)
				}
				return nil
			})
		}),
	}
}

func newDumpMetadataCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-metadata",
		Short: "Dumps all metadata entries from the database to a timestamped json file",
		Args:  exactArgs(0),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				path, err := uc.DumpMetadata(cmd.Context())
				if err != nil {
					return fmt.Errorf("dumping metadata: %w", err)
				}
				printDone(cmd.OutOrStdout(), "metadata written to %s", path)
				return nil
			})
		}),
	}
}

func newInitFromCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "init-from <endpoint>",
		Short: "Inserts metadata from a json endpoint or a dump file",
		Example: `  sg-cli init-from https://example.com/metadata.json
  sg-cli init-from json-dumps/2026-10-14_09-30-00.json`,
		Args: exactArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				report, err := uc.InitFrom(cmd.Context(), args[0])
				return printBatch(cmd, "initiating db from endpoint", report, err)
			})
		}),
	}
}

func newShowStageCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show-stage",
		Short: "Shows the current collection stage",
		Args:  exactArgs(0),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			return opts.withUseCase(cmd.Context(), func(uc MetadataUseCase) error {
				stage, err := uc.CurrentStage(cmd.Context())
				if err != nil {
					return fmt.Errorf("reading current stage: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), stage)
				return nil
			})
		}),
	}
}

// printBatch reports the outcome of a batch command and wraps its error with
// the action that failed.
func printBatch(cmd *cobra.Command, action string, report *services.BatchReport, err error) error {
	if err != nil {
		if report != nil && report.Selected > 0 {
			printPartial(cmd.ErrOrStderr(), report)
		}
		return fmt.Errorf("%s: %w", action, err)
	}
	printDone(cmd.OutOrStdout(), "%s: %d of %d records updated", report.Operation, report.Committed, report.Selected)
	return nil
}
