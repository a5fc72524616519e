package config

import (
	"github.com/sirupsen/logrus"
)

// Config carries the knobs shared by the solving engines.
type Config struct {
	// Logger receives solver diagnostics. Search internals log at debug
	// level.
	Logger *logrus.Logger
	// VarDecay is the variable activity decay constant in (0, 1].
	VarDecay float64
	// ClaDecay is the clause activity decay constant in (0, 1].
	ClaDecay float64
	// MaxDecisions bounds the number of decisions before the solve gives up
	// with an Unknown verdict. Zero means no bound.
	MaxDecisions int64
}

// New returns a config with the default decay constants and a logger that
// only reports warnings.
func New() *Config {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return &Config{
		Logger:   logger,
		VarDecay: 0.95,
		ClaDecay: 0.999,
	}
}
