package cli

import (
	"fmt"
	"math/rand"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"auto_swiper/infrastructure/config"
	"auto_swiper/infrastructure/logging"
	"auto_swiper/infrastructure/messages"

	"github.com/spf13/cobra"
)

// newMessagesCmd reveals the custom message file without starting the
// automation loop, creating it with example content when missing.
func newMessagesCmd(cfgPath *string) *cobra.Command {
	var noOpen bool

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Show (and open) the custom message file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			logger := logging.NewSessionLogger("")
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			pool, err := messages.Load(cfg.MessagesFile, cfg.PunArray, rng, logger)
			if err != nil {
				return err
			}

			abs, err := filepath.Abs(cfg.MessagesFile)
			if err != nil {
				abs = cfg.MessagesFile
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Message file: %s (%d messages)\n", abs, pool.Size())

			if noOpen {
				return nil
			}
			if err := openFile(abs); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not open the file automatically: %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noOpen, "no-open", false, "only print the file location")
	return cmd
}

// openFile asks the desktop environment to open the file with its default
// editor.
func openFile(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
