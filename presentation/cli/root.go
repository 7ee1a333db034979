package cli

import (
	"image"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auto_swiper/application/swiper"
	"auto_swiper/infrastructure/config"
	"auto_swiper/infrastructure/input"
	"auto_swiper/infrastructure/logging"
	"auto_swiper/infrastructure/messages"
	"auto_swiper/infrastructure/vision"
	"auto_swiper/presentation/terminal"

	"github.com/spf13/cobra"
)

const version = "2.0.0"

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. The default invocation starts the
// automation loop immediately from loaded configuration.
func NewRootCmd() *cobra.Command {
	var (
		cfgPath    string
		maxLikes   int
		waitSecs   float64
		confidence float64
	)

	cmd := &cobra.Command{
		Use:           "auto-swiper",
		Short:         "Automates repeated like/comment interactions in an Android emulator window",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-likes") {
				cfg.MaxLikes = maxLikes
			}
			if cmd.Flags().Changed("wait") {
				cfg.DefaultWaitTime = time.Duration(waitSecs * float64(time.Second))
			}
			if cmd.Flags().Changed("confidence") {
				cfg.Confidence = confidence
			}
			return runSession(cmd, cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to the configuration file")
	cmd.Flags().IntVar(&maxLikes, "max-likes", config.DefaultMaxLikes, "maximum number of likes per session")
	cmd.Flags().Float64Var(&waitSecs, "wait", config.DefaultWaitTimeSecs, "seconds to wait between polls and actions")
	cmd.Flags().Float64Var(&confidence, "confidence", config.DefaultConfidence, "minimum match score to accept a marker")

	cmd.AddCommand(newMessagesCmd(&cfgPath))
	return cmd
}

func runSession(cmd *cobra.Command, cfg *config.Config) error {
	logger := logging.NewSessionLogger(cfg.LogFile)
	view := terminal.NewView(cmd.OutOrStdout())
	view.Banner(version, time.Now())

	markers, err := vision.LoadMarkers(cfg.ImagesDir, cfg.Confidence, cfg.Scale, cfg.CommentEnabled, logger)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pool, err := messages.Load(cfg.MessagesFile, cfg.PunArray, rng, logger)
	if err != nil {
		return err
	}

	screen := vision.NewDisplay(cfg.Display)
	matcher := vision.NewTemplateMatcher(screen, logger)
	injector := input.NewInjector(logger)

	controller := swiper.NewController(matcher, injector, pool, markers, swiper.Options{
		MaxLikes:             cfg.MaxLikes,
		WaitTime:             cfg.DefaultWaitTime,
		MaxPollRetries:       cfg.MaxPollRetries,
		MaxConsecutiveMisses: cfg.MaxConsecutiveMisses,
		CommentEnabled:       cfg.CommentEnabled,
		ParkPoint:            image.Pt(100, 150),
	}, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := controller.Run(ctx)
	view.Summary(stats)
	if err != nil {
		logger.WithError(err).Error("Session aborted, check that the emulator window is visible and focused")
	}
	return err
}
