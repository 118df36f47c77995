package ui

import (
	"math"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Monotoba/OpenPCB/internal/logging"
	"github.com/Monotoba/OpenPCB/internal/model"
)

// scaleEnvVar is read by the toolkit once at startup, so ConfigureHiDPI must
// run before the Fyne app is created.
const scaleEnvVar = "FYNE_SCALE"

// ConfigureHiDPI applies the HiDPI settings to the process environment.
//
// In auto mode an externally set scale factor (e.g. from the desktop
// environment) is respected; overriding it would scale twice. Custom mode
// always wins over the environment. System mode with scaling disabled pins
// the scale to 1:1.
func ConfigureHiDPI(settings model.HiDPISettings) {
	log := logging.GetLogger()
	external := os.Getenv(scaleEnvVar)

	switch settings.ScaleMode {
	case model.ScaleModeCustom:
		factor := settings.CustomScaleFactor
		if settings.RoundScaleFactor {
			factor = math.Round(factor)
		}
		os.Setenv(scaleEnvVar, strconv.FormatFloat(factor, 'f', -1, 64))
		log.Info("using custom scale factor", zap.Float64("scale", factor))

	case model.ScaleModeSystem:
		if !settings.EnableHiDPIScaling {
			os.Setenv(scaleEnvVar, "1.0")
			log.Info("hidpi scaling disabled, pinned scale to 1.0")
		} else {
			os.Unsetenv(scaleEnvVar)
			log.Debug("using system DPI scaling")
		}

	default: // auto
		if external != "" {
			log.Info("external scale factor detected, leaving scaling to the environment",
				zap.String("scale", external))
		} else {
			os.Unsetenv(scaleEnvVar)
			log.Debug("using automatic scaling")
		}
	}
}
