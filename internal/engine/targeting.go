package engine

import "github.com/forestfirst/gatecrash/internal/game"

// Battlefield is the occupancy lookup contract the targeting resolver
// consumes. Implementations return pointers into live state so damage can
// be applied to the resolved targets directly.
type Battlefield interface {
	EnemyAt(pos game.Position) *game.Enemy
	FrontEnemyInColumn(col int) *game.Enemy
	EnemiesInRow(row int) []*game.Enemy
	EnemiesInColumn(col int) []*game.Enemy
	AllEnemies() []*game.Enemy
	GateAt(col int) *game.Gate
	CanAttackGate(col int) bool
}

// GateRow is the pseudo-row reported for gate targets; gates sit behind the
// enemy grid and have no cell of their own.
const GateRow = -1

// NeedsColumn reports whether a range shape is anchored to the card's
// target column and therefore requires it to be inside the board.
func NeedsColumn(shape game.RangeShape) bool {
	switch shape {
	case game.RangeSingleFront, game.RangeSingleTarget, game.RangeColumn:
		return true
	default:
		return false
	}
}

// ResolveTargets expands a weapon's range shape into concrete targets.
// Unsupported shapes resolve to an empty list; callers are responsible for
// reporting that as a failed play rather than a crash.
func ResolveTargets(w *game.Weapon, bf Battlefield, originColumn int) []game.AttackTarget {
	switch w.Shape {
	case game.RangeSingleFront:
		if e := bf.FrontEnemyInColumn(originColumn); e != nil {
			return []game.AttackTarget{enemyTarget(e)}
		}
		return nil

	case game.RangeSingleTarget:
		pos := game.Position{Row: w.RangeRow, Col: originColumn}
		if e := bf.EnemyAt(pos); e != nil {
			return []game.AttackTarget{enemyTarget(e)}
		}
		return gateFallback(bf, originColumn)

	case game.RangeRow:
		return enemyTargets(bf.EnemiesInRow(w.RangeRow))

	case game.RangeColumn:
		if ts := enemyTargets(bf.EnemiesInColumn(originColumn)); len(ts) > 0 {
			return ts
		}
		return gateFallback(bf, originColumn)

	case game.RangeAll:
		// Gates are never swept by field-wide attacks.
		return enemyTargets(bf.AllEnemies())

	case game.RangeSelf:
		// Self-effects carry no target; the caller applies them.
		return nil

	default:
		return nil
	}
}

func enemyTarget(e *game.Enemy) game.AttackTarget {
	return game.AttackTarget{
		Position: game.Position{Row: e.Row, Col: e.Col},
		Enemy:    e,
	}
}

func enemyTargets(enemies []*game.Enemy) []game.AttackTarget {
	if len(enemies) == 0 {
		return nil
	}
	targets := make([]game.AttackTarget, 0, len(enemies))
	for _, e := range enemies {
		targets = append(targets, enemyTarget(e))
	}
	return targets
}

func gateFallback(bf Battlefield, col int) []game.AttackTarget {
	if !bf.CanAttackGate(col) {
		return nil
	}
	g := bf.GateAt(col)
	if g == nil {
		return nil
	}
	return []game.AttackTarget{{
		Position: game.Position{Row: GateRow, Col: col},
		Gate:     g,
	}}
}
