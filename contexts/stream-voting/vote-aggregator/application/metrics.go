package application

import "beastypage/contexts/stream-voting/vote-aggregator/ports"

type nopMetrics struct{}

func (nopMetrics) VoteCreated(bool) {}
func (nopMetrics) VotesListed(int)  {}

func ResolveMetrics(metrics ports.Metrics) ports.Metrics {
	if metrics == nil {
		return nopMetrics{}
	}
	return metrics
}
