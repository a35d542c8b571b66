package models

import "time"

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(s); t {
	case TargetPost, TargetComment:
		return t, nil
	}
	return "", NewValidationError("target type must be 'post' or 'comment'")
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionUp, DirectionDown:
		return d, nil
	}
	return "", NewValidationError("direction must be 'up' or 'down'")
}

// Vote is one voter's vote on one post or comment. The composite unique index
// keeps the ledger at one row per (voter, target).
type Vote struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	VoterID    int        `gorm:"not null;uniqueIndex:idx_votes_voter_target,priority:1" json:"voter_id"`
	TargetType TargetType `gorm:"size:16;not null;uniqueIndex:idx_votes_voter_target,priority:2;index:idx_votes_target,priority:1" json:"target_type"`
	TargetID   int        `gorm:"not null;uniqueIndex:idx_votes_voter_target,priority:3;index:idx_votes_target,priority:2" json:"target_id"`
	Direction  Direction  `gorm:"size:8;not null" json:"direction"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// VoteAction reports what ToggleVote did to the ledger.
type VoteAction string

const (
	VoteCreated VoteAction = "created"
	VoteUpdated VoteAction = "updated"
	VoteRemoved VoteAction = "removed"
)

type VoteRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// VoteCount aggregates the ledger for one target. Count is the directionless tally.
type VoteCount struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
	Total     int64 `json:"total"`
	Count     int64 `json:"count"`
}

func NewVoteCount(up, down int64) VoteCount {
	return VoteCount{Upvotes: up, Downvotes: down, Total: up - down, Count: up + down}
}

// VotedTarget pairs a vote with a summary of what it was cast on.
type VotedTarget struct {
	Vote
	TargetSummary string `json:"target_summary"`
	TargetPostID  int    `json:"target_post_id"`
	TargetStatus  string `json:"target_status"`
}
