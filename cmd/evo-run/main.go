// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command evo-run builds a small demonstration scenario (a budding,
// photosynthesizing cell in a bounded, lit, viscous pool) and ticks it,
// printing a status line per tick. It exists to exercise the core end to
// end; a real embedder owns scenario construction and rendering.
package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/fgamador/evo-sim/biology"
	"github.com/fgamador/evo-sim/bond"
	"github.com/fgamador/evo-sim/control"
	"github.com/fgamador/evo-sim/environment"
	"github.com/fgamador/evo-sim/quantities"
	"github.com/fgamador/evo-sim/world"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nevo-sim -- a 2D soft-body cell simulation core\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	const numTicks = 20

	w := buildScenario()

	for i := 0; i < numTicks; i++ {
		w.Tick()
		io.Pf("tick %2d: %d cells, %d bonds\n", i, len(w.Cells()), len(w.Bonds()))
	}

	w.HandleUserAction(world.UserAction{Kind: world.DebugPrint})
}

// buildScenario builds a single photosynthesizing, budding cell floating
// in a lit, bounded, viscous pool, the minimal scenario that exercises
// influences, control, reproduction, and structural reconciliation.
func buildScenario() *world.World {
	photo := biology.NewCellLayer(quantities.Area(20), 1, biology.ColorGreen, biology.NewPhotoSpecialty(0.05))
	bonding := biology.NewCellLayer(quantities.Area(5), 1, biology.ColorWhite, biology.NewBondingSpecialty())

	ctrl := control.NewRandomBuddingControl(1, 0, 5, 1)
	cell := biology.NewCell(quantities.NewVec2(0, 0), quantities.Zero2, []*biology.CellLayer{photo, bonding}, ctrl)
	cell.SetInitialEnergy(50)

	minCorner := quantities.NewVec2(-100, -100)
	maxCorner := quantities.NewVec2(100, 100)

	influences := []world.Influence{
		environment.NewWallCollisions[*biology.Cell, *bond.Bond, *bond.AngleGusset](minCorner, maxCorner),
		environment.NewPairCollisions[*biology.Cell, *bond.Bond, *bond.AngleGusset](),
		environment.NewBondForces[*biology.Cell, *bond.Bond, *bond.AngleGusset](),
		environment.NewBondAngleForces[*biology.Cell, *bond.Bond, *bond.AngleGusset](),
		environment.NewSunlight[*biology.Cell, *bond.Bond, *bond.AngleGusset](-100, 100, 0, 1),
		environment.NewSimpleForceInfluence[*biology.Cell, *bond.Bond, *bond.AngleGusset](environment.DragForce{Viscosity: 0.01}),
	}

	return world.New(minCorner, maxCorner, world.DefaultParameters(), influences, []*biology.Cell{cell}, nil, nil, 42)
}
