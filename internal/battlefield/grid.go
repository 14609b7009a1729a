// Package battlefield provides the in-memory grid store behind the
// targeting resolver's lookup contract. The serializable occupancy data
// lives in game.FieldState; Grid only adds behavior on top of it.
package battlefield

import "github.com/forestfirst/gatecrash/internal/game"

// Grid wraps a FieldState with position lookups. All returned pointers
// reference the underlying state so damage application mutates it directly.
type Grid struct {
	f *game.FieldState
}

func New(f *game.FieldState) *Grid { return &Grid{f: f} }

// Generate lays out a fresh battlefield: enemies fill the grid front row
// first, cycling through the catalog templates, and every column gets a
// gate behind the back row.
func Generate(templates []game.EnemyTemplate, rows, cols, count, gateHP int) game.FieldState {
	f := game.FieldState{Rows: rows, Cols: cols}
	if len(templates) == 0 || rows <= 0 || cols <= 0 {
		return f
	}
	if count > rows*cols {
		count = rows * cols
	}
	for i := 0; i < count; i++ {
		tpl := templates[i%len(templates)]
		f.Enemies = append(f.Enemies, game.Enemy{
			ID:         i + 1,
			Name:       tpl.Name,
			Row:        i / cols,
			Col:        i % cols,
			MaxHP:      tpl.HP,
			HP:         tpl.HP,
			Mechanical: tpl.Mechanical,
		})
	}
	for col := 0; col < cols; col++ {
		f.Gates = append(f.Gates, game.Gate{Col: col, MaxHP: gateHP, HP: gateHP})
	}
	return f
}

func (g *Grid) EnemyAt(pos game.Position) *game.Enemy {
	for i := range g.f.Enemies {
		e := &g.f.Enemies[i]
		if !e.Defeated && e.Row == pos.Row && e.Col == pos.Col {
			return e
		}
	}
	return nil
}

// FrontEnemyInColumn returns the living enemy closest to the front row.
func (g *Grid) FrontEnemyInColumn(col int) *game.Enemy {
	var front *game.Enemy
	for i := range g.f.Enemies {
		e := &g.f.Enemies[i]
		if e.Defeated || e.Col != col {
			continue
		}
		if front == nil || e.Row < front.Row {
			front = e
		}
	}
	return front
}

func (g *Grid) EnemiesInRow(row int) []*game.Enemy {
	var out []*game.Enemy
	for i := range g.f.Enemies {
		e := &g.f.Enemies[i]
		if !e.Defeated && e.Row == row {
			out = append(out, e)
		}
	}
	return out
}

func (g *Grid) EnemiesInColumn(col int) []*game.Enemy {
	var out []*game.Enemy
	for i := range g.f.Enemies {
		e := &g.f.Enemies[i]
		if !e.Defeated && e.Col == col {
			out = append(out, e)
		}
	}
	return out
}

func (g *Grid) AllEnemies() []*game.Enemy {
	var out []*game.Enemy
	for i := range g.f.Enemies {
		if !g.f.Enemies[i].Defeated {
			out = append(out, &g.f.Enemies[i])
		}
	}
	return out
}

func (g *Grid) GateAt(col int) *game.Gate {
	for i := range g.f.Gates {
		if g.f.Gates[i].Col == col {
			return &g.f.Gates[i]
		}
	}
	return nil
}

// CanAttackGate reports whether the column's gate is exposed: it exists,
// still stands, and no living enemy shields it.
func (g *Grid) CanAttackGate(col int) bool {
	gate := g.GateAt(col)
	if gate == nil || gate.Destroyed {
		return false
	}
	return len(g.EnemiesInColumn(col)) == 0
}

// Cleared reports whether every enemy is defeated.
func (g *Grid) Cleared() bool {
	for i := range g.f.Enemies {
		if !g.f.Enemies[i].Defeated {
			return false
		}
	}
	return true
}

// ApplyDamage applies a computed amount to the resolved target and reports
// whether the target was destroyed by it.
func ApplyDamage(target *game.AttackTarget, dmg int) (destroyed bool) {
	switch {
	case target.IsEnemy():
		e := target.Enemy
		e.HP -= dmg
		if e.HP <= 0 {
			e.HP = 0
			e.Defeated = true
			return true
		}
	case target.IsGate():
		g := target.Gate
		g.HP -= dmg
		if g.HP <= 0 {
			g.HP = 0
			g.Destroyed = true
			return true
		}
	}
	return false
}
