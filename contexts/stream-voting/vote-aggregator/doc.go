// Package voteaggregator records votes cast during live voting sessions and
// serves ordered, filtered views over them.
//
// Votes are append-only. The aggregator does not deduplicate per participant
// and does not check that a session or step is open; those rules belong to the
// session lifecycle owner.
package voteaggregator
