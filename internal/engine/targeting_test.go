package engine

import (
	"testing"

	"github.com/forestfirst/gatecrash/internal/battlefield"
	"github.com/forestfirst/gatecrash/internal/game"
)

// 3x3 field: two enemies stacked in column 0, one in column 2, column 1
// empty with an exposed gate.
func testField() *game.FieldState {
	return &game.FieldState{
		Rows: 3,
		Cols: 3,
		Enemies: []game.Enemy{
			{ID: 1, Name: "Raider", Row: 0, Col: 0, MaxHP: 100, HP: 100},
			{ID: 2, Name: "Gunner", Row: 1, Col: 0, MaxHP: 100, HP: 100},
			{ID: 3, Name: "Sentinel", Row: 1, Col: 2, MaxHP: 100, HP: 100, Mechanical: true},
		},
		Gates: []game.Gate{
			{Col: 0, MaxHP: 500, HP: 500},
			{Col: 1, MaxHP: 500, HP: 500},
			{Col: 2, MaxHP: 500, HP: 500},
		},
	}
}

func shapeWeapon(shape game.RangeShape, rangeRow int) game.Weapon {
	return game.Weapon{Name: "probe", Attribute: game.AttrIce, Category: game.CategoryBlade, Shape: shape, RangeRow: rangeRow}
}

func TestResolve_SingleFrontPrefersFrontRow(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeSingleFront, 0)
	targets := ResolveTargets(&w, bf, 0)
	if len(targets) != 1 || !targets[0].IsEnemy() || targets[0].Enemy.ID != 1 {
		t.Fatalf("expected front enemy id=1, got %+v", targets)
	}
}

func TestResolve_SingleFrontEmptyColumn(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeSingleFront, 0)
	if targets := ResolveTargets(&w, bf, 1); len(targets) != 0 {
		t.Fatalf("empty column must yield no single-front target, got %+v", targets)
	}
}

func TestResolve_SingleTargetExactCell(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeSingleTarget, 1)
	targets := ResolveTargets(&w, bf, 0)
	if len(targets) != 1 || !targets[0].IsEnemy() || targets[0].Enemy.ID != 2 {
		t.Fatalf("expected enemy id=2 at (1,0), got %+v", targets)
	}
}

func TestResolve_SingleTargetFallsBackToGate(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeSingleTarget, 0)
	targets := ResolveTargets(&w, bf, 1)
	if len(targets) != 1 || !targets[0].IsGate() || targets[0].Gate.Col != 1 {
		t.Fatalf("expected gate fallback in empty column 1, got %+v", targets)
	}
	if targets[0].Position.Row != GateRow {
		t.Fatalf("gate target must report the gate pseudo-row, got %d", targets[0].Position.Row)
	}
}

func TestResolve_SingleTargetNoGateBehindEnemies(t *testing.T) {
	bf := battlefield.New(testField())
	// cell (2,0) is empty but column 0 still has living enemies shielding
	// the gate, so nothing is targetable.
	w := shapeWeapon(game.RangeSingleTarget, 2)
	if targets := ResolveTargets(&w, bf, 0); len(targets) != 0 {
		t.Fatalf("shielded gate must not be targetable, got %+v", targets)
	}
}

func TestResolve_Row(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeRow, 1)
	targets := ResolveTargets(&w, bf, 0)
	if len(targets) != 2 {
		t.Fatalf("expected 2 enemies in row 1, got %d", len(targets))
	}
	for _, tt := range targets {
		if !tt.IsEnemy() || tt.Position.Row != 1 {
			t.Fatalf("unexpected row target %+v", tt)
		}
	}
}

func TestResolve_ColumnWithGateFallback(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeColumn, 0)

	targets := ResolveTargets(&w, bf, 0)
	if len(targets) != 2 {
		t.Fatalf("expected both enemies in column 0, got %d", len(targets))
	}

	targets = ResolveTargets(&w, bf, 1)
	if len(targets) != 1 || !targets[0].IsGate() {
		t.Fatalf("empty column must fall back to its gate, got %+v", targets)
	}
}

func TestResolve_AllNeverIncludesGates(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeAll, 0)
	targets := ResolveTargets(&w, bf, 0)
	if len(targets) != 3 {
		t.Fatalf("expected every living enemy, got %d", len(targets))
	}
	for _, tt := range targets {
		if tt.IsGate() {
			t.Fatalf("field-wide attack must never target gates: %+v", tt)
		}
	}
}

func TestResolve_SelfAndUnsupportedShapes(t *testing.T) {
	bf := battlefield.New(testField())
	w := shapeWeapon(game.RangeSelf, 0)
	if targets := ResolveTargets(&w, bf, 0); len(targets) != 0 {
		t.Fatalf("self shape must resolve to no targets, got %+v", targets)
	}
	w.Shape = game.RangeShape("spiral")
	if targets := ResolveTargets(&w, bf, 0); len(targets) != 0 {
		t.Fatalf("unsupported shape must resolve to an empty list, got %+v", targets)
	}
}

func TestResolve_DefeatedEnemiesAreSkipped(t *testing.T) {
	f := testField()
	f.Enemies[0].Defeated = true
	bf := battlefield.New(f)
	w := shapeWeapon(game.RangeSingleFront, 0)
	targets := ResolveTargets(&w, bf, 0)
	if len(targets) != 1 || targets[0].Enemy.ID != 2 {
		t.Fatalf("front targeting must skip defeated enemies, got %+v", targets)
	}
}
