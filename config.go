package meteor

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = Tunables{}
)

// Tunables are the engine constants that are fixed for the process lifetime
// but worth tuning between runs. Per-tick inputs (model flag, speed
// multiplier) are explicitly not here: they are threaded through TickConfig.
type Tunables struct {
	ArcadeK             float64 // pull constant of the arcade model, display units
	StepSeconds         float64 // physical RK4 slice, s
	MaxPredictionSteps  int     // hard step budget of the ballistic predictor
	EscapeRadiusDisplay float64 // predictor bails out past this distance
	FadeRatePerSecond   float64 // opacity lost per simulated second
	ImpactMarginDisplay float64 // widens the impact test by the visual radius
	DefaultTTLSeconds   float64 // TTL assigned by SpawnDefault
	DefaultDiameterM    float64 // diameter assumed by the predictor
}

// DefaultTunables returns the compiled-in defaults.
func DefaultTunables() Tunables {
	return Tunables{
		ArcadeK:             0.05,
		StepSeconds:         0.5,
		MaxPredictionSteps:  2000,
		EscapeRadiusDisplay: 500,
		FadeRatePerSecond:   1.0,
		ImpactMarginDisplay: 0.05,
		DefaultTTLSeconds:   120,
		DefaultDiameterM:    1.0,
	}
}

// engineConfig returns the engine tunables, reading the conf.toml pointed to
// by METEOR_CONFIG on first use. Without the environment variable the
// compiled defaults apply, which keeps the library usable from tests.
func engineConfig() Tunables {
	if cfgLoaded {
		return config
	}
	config = DefaultTunables()
	confPath := os.Getenv("METEOR_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found: %s", confPath, err))
	}
	setIfPresent := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	setIfPresent("arcade.pull_constant", &config.ArcadeK)
	setIfPresent("realistic.step_seconds", &config.StepSeconds)
	if viper.IsSet("prediction.max_steps") {
		config.MaxPredictionSteps = viper.GetInt("prediction.max_steps")
	}
	setIfPresent("prediction.escape_radius", &config.EscapeRadiusDisplay)
	setIfPresent("lifecycle.fade_rate", &config.FadeRatePerSecond)
	setIfPresent("lifecycle.impact_margin", &config.ImpactMarginDisplay)
	setIfPresent("lifecycle.default_ttl", &config.DefaultTTLSeconds)
	setIfPresent("prediction.default_diameter", &config.DefaultDiameterM)
	if config.StepSeconds <= 0 {
		panic("config realistic.step_seconds must be positive")
	}
	if config.MaxPredictionSteps <= 0 {
		panic("config prediction.max_steps must be positive")
	}
	cfgLoaded = true
	return config
}
