package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics. Module-specific metrics
// live next to their modules.
type Metrics struct {
	ProductsCreated   prometheus.Counter
	ProductsSubmitted prometheus.Counter
	ProfilesCreated   prometheus.Counter
}

// New creates and registers all process-level metrics.
func New() *Metrics {
	return &Metrics{
		ProductsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veripass_products_created_total",
			Help: "Total number of product passports created",
		}),
		ProductsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veripass_products_submitted_total",
			Help: "Total number of products submitted for verification",
		}),
		ProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veripass_profiles_created_total",
			Help: "Total number of compliance profiles created",
		}),
	}
}

// IncProductsCreated increments the product creation counter.
func (m *Metrics) IncProductsCreated() {
	if m != nil {
		m.ProductsCreated.Inc()
	}
}

// IncProductsSubmitted increments the submission counter.
func (m *Metrics) IncProductsSubmitted() {
	if m != nil {
		m.ProductsSubmitted.Inc()
	}
}

// IncProfilesCreated increments the profile creation counter.
func (m *Metrics) IncProfilesCreated() {
	if m != nil {
		m.ProfilesCreated.Inc()
	}
}
