package engine

import (
	"math/rand"
	"testing"

	"github.com/birdrush/birdrush/internal/config"
)

func testSpawner(seed int64) (*Spawner, config.GameConfig) {
	cfg := config.Default()
	diff := config.NewDifficultyManager(cfg.Difficulty)
	return NewSpawner(rand.New(rand.NewSource(seed)), &cfg, diff), cfg
}

func TestSpawnPipeGapBounds(t *testing.T) {
	s, cfg := testSpawner(1)
	st := &State{Mode: ModeClassic}
	groundY := cfg.Canvas.GroundY()

	for i := 0; i < 200; i++ {
		p := s.spawnPipe(st)

		if p.X != cfg.Canvas.Width {
			t.Fatalf("pipe spawned at x=%v, want right edge %v", p.X, cfg.Canvas.Width)
		}
		if p.TopHeight < cfg.Pipes.MinHeight {
			t.Fatalf("top segment %v shorter than min %v", p.TopHeight, cfg.Pipes.MinHeight)
		}
		if p.BottomY != p.TopHeight+cfg.Pipes.Gap {
			t.Fatalf("gap = %v, want %v", p.BottomY-p.TopHeight, cfg.Pipes.Gap)
		}
		if groundY-p.BottomY < cfg.Pipes.MinHeight {
			t.Fatalf("bottom segment %v shorter than min %v", groundY-p.BottomY, cfg.Pipes.MinHeight)
		}
	}
}

func TestSpawnPipePowerUpAttachment(t *testing.T) {
	s, cfg := testSpawner(2)
	st := &State{Mode: ModePowerUps}

	withPickup := 0
	for i := 0; i < 500; i++ {
		p := s.spawnPipe(st)
		if p.PowerUp == nil {
			continue
		}
		withPickup++

		pu := p.PowerUp
		if pu.X != p.X+p.W/2 {
			t.Fatalf("pickup x=%v, want pipe center %v", pu.X, p.X+p.W/2)
		}
		wantY := p.TopHeight + cfg.Pipes.Gap/2
		if pu.Y != wantY {
			t.Fatalf("pickup y=%v, want gap center %v", pu.Y, wantY)
		}
		if pu.Kind < PowerShield || pu.Kind > PowerDouble {
			t.Fatalf("unknown pickup kind %v", pu.Kind)
		}
	}

	// chance is 0.35: both extremes indicate a broken draw
	if withPickup == 0 || withPickup == 500 {
		t.Errorf("pickup attachment count = %d/500, expected a fraction", withPickup)
	}
}

func TestClassicPipesNeverCarryPowerUps(t *testing.T) {
	s, _ := testSpawner(3)
	st := &State{Mode: ModeClassic}

	for i := 0; i < 100; i++ {
		if p := s.spawnPipe(st); p.PowerUp != nil {
			t.Fatal("classic mode pipe carries a pickup")
		}
	}
}

func TestClassicSpawnCadence(t *testing.T) {
	s, cfg := testSpawner(4)
	st := &State{Mode: ModeClassic}

	for frame := 1; frame <= 3*cfg.Pipes.SpawnInterval; frame++ {
		st.FrameCount = frame
		s.Step(st)
	}

	if len(st.Pipes) != 3 {
		t.Errorf("pipes after 3 intervals = %d, want 3", len(st.Pipes))
	}
}

func TestSurvivalSpawnJitterBounds(t *testing.T) {
	s, cfg := testSpawner(5)

	lo := cfg.Survival.SpawnInterval - cfg.Survival.SpawnJitter
	hi := cfg.Survival.SpawnInterval + cfg.Survival.SpawnJitter
	for i := 0; i < 200; i++ {
		got := s.jitteredInterval(0, 0)
		if got < lo || got > hi {
			t.Fatalf("jittered interval %d outside [%d, %d]", got, lo, hi)
		}
	}
}

func TestSurvivalSpawnStep(t *testing.T) {
	s, cfg := testSpawner(6)
	st := &State{Mode: ModeSurvival}

	var spawnFrames []int
	for frame := 1; frame <= 600; frame++ {
		st.FrameCount = frame
		before := len(st.Obstacles)
		s.Step(st)
		if len(st.Obstacles) > before {
			spawnFrames = append(spawnFrames, frame)
		}
	}

	if len(spawnFrames) < 2 {
		t.Fatalf("only %d obstacles spawned in 600 frames", len(spawnFrames))
	}

	lo := cfg.Survival.SpawnInterval - cfg.Survival.SpawnJitter
	hi := cfg.Survival.SpawnInterval + cfg.Survival.SpawnJitter
	for i := 1; i < len(spawnFrames); i++ {
		d := spawnFrames[i] - spawnFrames[i-1]
		if d < lo || d > hi {
			t.Errorf("spawn gap %d outside [%d, %d]", d, lo, hi)
		}
	}
}

func TestSpawnObstaclePlacement(t *testing.T) {
	s, cfg := testSpawner(7)
	groundY := cfg.Canvas.GroundY()

	seen := make(map[ObstacleKind]int)
	for i := 0; i < 500; i++ {
		ob := s.spawnObstacle()
		seen[ob.Kind()]++

		switch o := ob.(type) {
		case *Spike:
			if o.OnCeiling && o.Y != 0 {
				t.Fatalf("ceiling spike at y=%v", o.Y)
			}
			if !o.OnCeiling && o.Y != groundY-o.H {
				t.Fatalf("ground spike at y=%v, want %v", o.Y, groundY-o.H)
			}
		case *Laser:
			if !o.On {
				t.Fatal("lasers spawn in the on state")
			}
			if o.Y < cfg.Survival.Laser.BandTop || o.Y+o.H > groundY-cfg.Survival.Laser.BandFloor {
				t.Fatalf("laser y=%v outside its band", o.Y)
			}
		case *Portal:
			if o.Y < cfg.Survival.Portal.BandTop || o.Y+o.H > groundY-cfg.Survival.Portal.BandFloor {
				t.Fatalf("portal y=%v outside its band", o.Y)
			}
			if o.Teleported {
				t.Fatal("portal spawned already spent")
			}
		case *Meteor:
			if o.Y != -cfg.Survival.Meteor.Size {
				t.Fatalf("meteor y=%v, want above canvas", o.Y)
			}
			if o.X < cfg.Canvas.Width/2 {
				t.Fatalf("meteor x=%v, want right half of the canvas", o.X)
			}
		case *Barrier:
			minY := cfg.Survival.Barrier.Margin
			maxY := groundY - cfg.Survival.Barrier.Margin - o.GapH
			if o.GapY < minY || o.GapY > maxY {
				t.Fatalf("barrier gap y=%v outside [%v, %v]", o.GapY, minY, maxY)
			}
			if o.GapDir != 1 && o.GapDir != -1 {
				t.Fatalf("barrier gap dir = %v", o.GapDir)
			}
			if o.H != groundY {
				t.Fatalf("barrier height = %v, want full playfield %v", o.H, groundY)
			}
		}
	}

	for kind := ObstacleSpike; kind <= ObstacleBarrier; kind++ {
		if seen[kind] == 0 {
			t.Errorf("kind %v never spawned in 500 draws", kind)
		}
	}
}
