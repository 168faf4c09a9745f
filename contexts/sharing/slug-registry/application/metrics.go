package application

import "beastypage/contexts/sharing/slug-registry/ports"

type nopMetrics struct{}

func (nopMetrics) SlugAttempt(string)  {}
func (nopMetrics) ShareCreated(string) {}
func (nopMetrics) SlugExhausted()      {}

// ResolveMetrics returns a no-op recorder when metrics are not wired.
func ResolveMetrics(metrics ports.Metrics) ports.Metrics {
	if metrics == nil {
		return nopMetrics{}
	}
	return metrics
}
