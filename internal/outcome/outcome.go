// Package outcome resolves a bet into a win/loss result. Resolvers are pure
// apart from the injected random source, so tests can script exact draw
// sequences.
package outcome

import (
	"errors"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"casino/internal/models"
	"casino/internal/money"
)

// MaxLadderLevel is the top rung of the ladder game. Reaching it pays the
// bet back on top of the per-level reward.
const MaxLadderLevel = 11

// ladderLevelReward is the payout per crossed level in minor units (9.00).
const ladderLevelReward = 900

var (
	ErrInvalidTargetLevel = errors.New("target level out of range")
	ErrUnknownGameKind    = errors.New("unknown game kind")
)

// Source yields uniform draws in [0, 1). A fresh instance per settlement
// keeps the resolver free of shared state.
type Source interface {
	Float64() float64
}

func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// LadderTrace records how far a ladder run survived relative to its target.
type LadderTrace struct {
	TargetLevel   int `json:"target_level"`
	LevelsCrossed int `json:"levels_crossed"`
}

type Result struct {
	Won    bool
	Payout int64
	Ladder *LadderTrace
}

// Resolve maps a validated bet to an outcome. Callers must have already
// checked bet bounds and funds; the first random draw happens here and only
// here.
func Resolve(game models.Game, bet int64, targetLevel int, src Source) (Result, error) {
	switch game.Kind {
	case models.GameKindMultiplier:
		return resolveMultiplier(game, bet, src), nil
	case models.GameKindLadder:
		return resolveLadder(bet, targetLevel, src)
	default:
		return Result{}, ErrUnknownGameKind
	}
}

// ValidateTarget checks ladder parameters without consuming any randomness,
// so a rejected bet never burns entropy.
func ValidateTarget(game models.Game, targetLevel int) error {
	if game.Kind != models.GameKindLadder {
		return nil
	}
	if targetLevel < 1 || targetLevel > MaxLadderLevel {
		return ErrInvalidTargetLevel
	}
	return nil
}

func resolveMultiplier(game models.Game, bet int64, src Source) Result {
	draw := decimal.NewFromFloat(src.Float64())
	if !draw.LessThan(game.WinProbability) {
		return Result{}
	}
	payout := money.RoundMinor(decimal.NewFromInt(bet).Mul(game.WinMultiplier))
	return Result{Won: true, Payout: payout}
}

func resolveLadder(bet int64, targetLevel int, src Source) (Result, error) {
	if targetLevel < 1 || targetLevel > MaxLadderLevel {
		return Result{}, ErrInvalidTargetLevel
	}
	crossed := 0
	for level := 1; level <= targetLevel; level++ {
		if src.Float64() < 0.5 {
			break
		}
		crossed = level
	}
	trace := &LadderTrace{TargetLevel: targetLevel, LevelsCrossed: crossed}
	if crossed < targetLevel {
		return Result{Ladder: trace}, nil
	}
	payout := int64(ladderLevelReward * crossed)
	if targetLevel == MaxLadderLevel {
		payout += bet
	}
	return Result{Won: true, Payout: payout, Ladder: trace}, nil
}
