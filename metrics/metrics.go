package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	impactsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "meteor_impacts_total",
		Help: "Cumulative number of surface impacts",
	})
	lastImpactEnergyGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "meteor_last_impact_energy_joules",
		Help: "Kinetic energy of the most recent impact (in Joules)",
	})
	lastImpactTNTGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "meteor_last_impact_tnt_kilotons",
		Help: "TNT equivalent of the most recent impact (in kilotons)",
	})
	liveProjectilesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "meteor_live_projectiles",
		Help: "Projectiles currently flying or fading",
	})
	integrationStepsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "meteor_integration_steps_total",
		Help: "Cumulative RK4 steps taken by the realistic model",
	})
)

func init() {
	prometheus.MustRegister(
		impactsTotal, lastImpactEnergyGauge, lastImpactTNTGauge,
		liveProjectilesGauge, integrationStepsTotal,
	)
}

// RecordImpact bumps the impact counter and refreshes the last-impact gauges.
func RecordImpact(joules, kilotons float64) {
	impactsTotal.Inc()
	lastImpactEnergyGauge.Set(joules)
	lastImpactTNTGauge.Set(kilotons)
}

// SetLiveProjectiles publishes the size of the live set.
func SetLiveProjectiles(n int) {
	liveProjectilesGauge.Set(float64(n))
}

// AddIntegrationSteps counts RK4 substeps for cost tracking.
func AddIntegrationSteps(n int) {
	integrationStepsTotal.Add(float64(n))
}
