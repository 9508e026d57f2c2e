// Command portalctl runs administrative tasks against the feedback database.
package main

import (
	"os"

	"github.com/TRK06/feedback-system/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("portalctl failed")
		os.Exit(1)
	}
}
