package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VoteToggles counts ledger toggles by target type and resulting action.
	VoteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_vote_toggles_total",
		Help: "Total number of vote toggles by target type and action",
	}, []string{"target_type", "action"})

	// CommentsCascaded counts comments moved to deleted by subtree deletes.
	CommentsCascaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_comments_cascade_deleted_total",
		Help: "Total number of comments soft-deleted by subtree cascades",
	})

	// VoteCountCache counts vote-count cache lookups by result.
	VoteCountCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_vote_count_cache_total",
		Help: "Vote count cache lookups by result (hit, miss, error)",
	}, []string{"result"})
)
