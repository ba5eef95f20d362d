package flappy

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/flappish/internal/config"
	"github.com/vovakirdan/flappish/internal/core"
)

const testTickRate = 120

func testConfig() config.FlappyConfig {
	return config.DefaultFlappyConfig(config.VariantFlappish)
}

// quietConfig has no gravity and no spawning, so tests can place pipes by hand.
func quietConfig() config.FlappyConfig {
	cfg := testConfig()
	cfg.Physics.Gravity = 0
	cfg.Obstacles.SpawnInterval = time.Hour
	return cfg
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

func jump() core.InputFrame {
	return core.FrameOf(core.ActionJump)
}

func TestNewSession(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg, testTickRate, 42)

	if s.State() != StateActive {
		t.Errorf("new session state = %v, want active", s.State())
	}
	if s.Score() != 0 || s.Tick() != 0 {
		t.Errorf("new session score=%d tick=%d, want zeros", s.Score(), s.Tick())
	}
	if len(s.Obstacles()) != 0 {
		t.Errorf("new session has %d obstacles", len(s.Obstacles()))
	}
	p := s.Player()
	if p.X != cfg.Player.X || p.Y != cfg.Player.StartY || p.Velocity != 0 {
		t.Errorf("player = %+v, want start position at rest", p)
	}
}

func TestVelocityOverride(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg, testTickRate, 1)

	for i := 0; i < 60; i++ {
		in := noInput()
		jumped := i%9 == 0
		if jumped {
			in = jump()
		}

		before := s.Player().Velocity
		s.Step(in)
		if s.State() != StateActive {
			t.Fatalf("tick %d: run ended early", i)
		}
		after := s.Player().Velocity

		if jumped {
			if after != cfg.Physics.JumpImpulse {
				t.Fatalf("tick %d: velocity after jump = %v, want %v", i, after, cfg.Physics.JumpImpulse)
			}
			continue
		}
		if want := before + cfg.Physics.Gravity; after != want {
			t.Fatalf("tick %d: velocity = %v, want %v", i, after, want)
		}
	}
}

func TestPositionTruncatesTowardZero(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.Gravity = 0.4
	s := NewSession(cfg, testTickRate, 1)

	// 0.4 and 0.8 truncate to 0; 1.2 moves one unit.
	start := s.Player().Y
	s.Step(noInput())
	s.Step(noInput())
	if y := s.Player().Y; y != start {
		t.Errorf("after two ticks y = %d, want %d", y, start)
	}
	s.Step(noInput())
	if y := s.Player().Y; y != start+1 {
		t.Errorf("after three ticks y = %d, want %d", y, start+1)
	}

	// Upward velocity truncates toward zero as well: int(-10) = -10.
	s.Step(jump())
	if y := s.Player().Y; y != start+1-10 {
		t.Errorf("after jump y = %d, want %d", y, start+1-10)
	}

	// Next tick: velocity -9.6 must move 9 units up, not floor to -10.
	s.Step(noInput())
	if v := s.Player().Velocity; v > -9.5 || v < -9.7 {
		t.Fatalf("velocity after one gravity tick = %v, want about -9.6", v)
	}
	if y := s.Player().Y; y != start+1-10-9 {
		t.Errorf("after fractional upward tick y = %d, want %d", y, start+1-10-9)
	}
}

func TestMaxFallSpeed(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.Gravity = 1
	cfg.Physics.MaxFallSpeed = 3
	s := NewSession(cfg, testTickRate, 1)

	for i := 0; i < 10; i++ {
		s.Step(noInput())
	}
	if v := s.Player().Velocity; v != 3 {
		t.Errorf("velocity = %v, want capped at 3", v)
	}
}

func TestSpawnTiming(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.Gravity = 0
	s := NewSession(cfg, testTickRate, 7)

	period := cfg.Obstacles.SpawnTicks(testTickRate)
	for i := 0; i < period-1; i++ {
		s.Step(noInput())
	}
	if n := len(s.Obstacles()); n != 0 {
		t.Fatalf("obstacles before first expiry = %d, want 0", n)
	}

	s.Step(noInput())
	obs := s.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("obstacles after first expiry = %d, want 1", len(obs))
	}

	o := obs[0]
	wantX := cfg.Screen.Width - cfg.Obstacles.PipeWidth/2 - cfg.Physics.ScrollSpeed
	if o.X != wantX {
		t.Errorf("spawned X = %d, want %d", o.X, wantX)
	}
	if o.GapSize != cfg.Obstacles.GapSize {
		t.Errorf("gap = %d, want %d", o.GapSize, cfg.Obstacles.GapSize)
	}
	found := false
	for _, a := range cfg.Obstacles.GapAnchors {
		if o.GapAnchor == a {
			found = true
		}
	}
	if !found {
		t.Errorf("gap anchor %d not in %v", o.GapAnchor, cfg.Obstacles.GapAnchors)
	}

	if o.Top().Bottom() != o.GapAnchor-o.GapSize/2 {
		t.Errorf("top pipe ends at %d, want %d", o.Top().Bottom(), o.GapAnchor-o.GapSize/2)
	}
	if o.Bottom().Y-o.Top().Bottom() != o.GapSize {
		t.Errorf("gap between halves = %d, want %d", o.Bottom().Y-o.Top().Bottom(), o.GapSize)
	}

	for i := 0; i < period; i++ {
		s.Step(noInput())
	}
	if n := len(s.Obstacles()); n != 2 {
		t.Errorf("obstacles after second expiry = %d, want 2", n)
	}
}

func TestGapAnchorRange(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.Gravity = 0
	cfg.Obstacles.SpawnInterval = time.Second / testTickRate
	cfg.Obstacles.GapAnchorRange = &config.AnchorRange{Min: 260, Max: 270}
	s := NewSession(cfg, testTickRate, 3)

	for i := 0; i < 50; i++ {
		s.Step(noInput())
	}
	for _, o := range s.Obstacles() {
		if o.GapAnchor < 260 || o.GapAnchor > 270 {
			t.Fatalf("gap anchor %d outside [260, 270]", o.GapAnchor)
		}
	}
}

func TestRetirement(t *testing.T) {
	cfg := quietConfig()
	s := NewSession(cfg, testTickRate, 1)
	s.obstacles = append(s.obstacles,
		Obstacle{X: -95, GapAnchor: 300, GapSize: 300, Width: 100, Height: 700},
		Obstacle{X: -94, GapAnchor: 300, GapSize: 300, Width: 100, Height: 700},
	)

	s.Step(noInput())
	obs := s.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("obstacles after step = %d, want 1", len(obs))
	}
	if obs[0].Right() != 1 {
		t.Errorf("survivor right edge = %d, want 1", obs[0].Right())
	}

	for i := 0; i < 5; i++ {
		s.Step(noInput())
		for _, o := range s.Obstacles() {
			if o.Right() <= 0 {
				t.Fatalf("obstacle with right edge %d still active", o.Right())
			}
		}
	}
	if n := len(s.Obstacles()); n != 0 {
		t.Errorf("obstacles = %d, want all retired", n)
	}
}

// passSession puts one pipe at x=1100 with the bird at x=100 centred in its gap.
func passSession(mode string) *Session {
	cfg := quietConfig()
	cfg.Player.X = 100
	cfg.Scoring.Mode = mode
	s := NewSession(cfg, testTickRate, 1)

	birdCentre := cfg.Player.StartY + cfg.Player.Height/2
	s.obstacles = append(s.obstacles, Obstacle{
		X:         1100,
		GapAnchor: birdCentre,
		GapSize:   cfg.Obstacles.GapSize,
		Width:     cfg.Obstacles.PipeWidth,
		Height:    cfg.Obstacles.PipeHeight,
	})
	return s
}

func TestScoreOncePerPass(t *testing.T) {
	s := passSession(config.ScoringOnce)

	events := 0
	last := 0
	for len(s.Obstacles()) > 0 {
		res := s.Step(noInput())
		if s.State() != StateActive {
			t.Fatalf("tick %d: unexpected collision", s.Tick())
		}
		if s.Score() < last {
			t.Fatalf("score decreased from %d to %d", last, s.Score())
		}
		last = s.Score()
		events += res.Scored
	}

	if s.Score() != 1 {
		t.Errorf("score = %d, want exactly 1", s.Score())
	}
	if events != 1 {
		t.Errorf("scoring events = %d, want 1", events)
	}
}

func TestScoreEveryTick(t *testing.T) {
	s := passSession(config.ScoringEveryTick)

	for len(s.Obstacles()) > 0 {
		s.Step(noInput())
	}

	// The pipe centre is left of the bird centre (125) for x = 70 down to -95.
	if s.Score() != 34 {
		t.Errorf("score = %d, want 34", s.Score())
	}
}

func TestCollision(t *testing.T) {
	tests := []struct {
		name     string
		x        int // Pipe x before the tick's scroll
		anchor   int
		wantOver bool
	}{
		{"overlap top pipe", 100, 700, true},
		{"overlap bottom pipe", 100, 0, true},
		{"touching edge only", 130, 700, false},
		{"inside gap", 100, 318, false},
		{"far right", 600, 700, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(quietConfig(), testTickRate, 1)
			s.obstacles = append(s.obstacles, Obstacle{
				X: tt.x, GapAnchor: tt.anchor, GapSize: 300, Width: 100, Height: 700,
			})

			res := s.Step(noInput())
			gotOver := s.State() == StateGameOver
			if gotOver != tt.wantOver {
				t.Errorf("game over = %v, want %v", gotOver, tt.wantOver)
			}
			if res.Collided != tt.wantOver {
				t.Errorf("Collided = %v, want %v", res.Collided, tt.wantOver)
			}
		})
	}
}

func TestNoScoringOnCollisionTick(t *testing.T) {
	s := NewSession(quietConfig(), testTickRate, 1)
	// Already behind the bird, and the second pair collides.
	s.obstacles = append(s.obstacles,
		Obstacle{X: -50, GapAnchor: 318, GapSize: 300, Width: 100, Height: 700},
		Obstacle{X: 100, GapAnchor: 700, GapSize: 300, Width: 100, Height: 700},
	)

	res := s.Step(noInput())
	if !res.Collided {
		t.Fatal("expected collision")
	}
	if s.Score() != 0 || res.Scored != 0 {
		t.Errorf("score = %d (tick %d), want 0", s.Score(), res.Scored)
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	s := NewSession(quietConfig(), testTickRate, 1)
	s.obstacles = append(s.obstacles, Obstacle{X: 100, GapAnchor: 700, GapSize: 300, Width: 100, Height: 700})
	s.Step(noInput())

	before := s.Snapshot()
	for i := 0; i < 10; i++ {
		if res := s.Step(jump()); res.Collided || res.Scored != 0 {
			t.Fatalf("step after game over returned %+v", res)
		}
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("state changed after game over")
	}
}

func TestClampOnlyWithoutCollision(t *testing.T) {
	t.Run("no collision clamps to ceiling", func(t *testing.T) {
		s := NewSession(quietConfig(), testTickRate, 1)
		s.player.Y = 5
		s.Step(jump())
		if y := s.Player().Y; y != 0 {
			t.Errorf("y = %d, want clamped to 0", y)
		}
	})

	t.Run("collision keeps unclamped position", func(t *testing.T) {
		s := NewSession(quietConfig(), testTickRate, 1)
		s.player.Y = 5
		s.obstacles = append(s.obstacles, Obstacle{X: 100, GapAnchor: 300, GapSize: 300, Width: 100, Height: 700})
		s.Step(jump())
		if s.State() != StateGameOver {
			t.Fatal("expected game over")
		}
		if y := s.Player().Y; y != -5 {
			t.Errorf("y = %d, want unclamped -5", y)
		}
		if y := s.Snapshot().Player.Y; y != -5 {
			t.Errorf("snapshot y = %d, want -5", y)
		}
	})

	t.Run("floor clamp", func(t *testing.T) {
		cfg := quietConfig()
		s := NewSession(cfg, testTickRate, 1)
		s.player.Velocity = 500
		s.Step(noInput())
		if want := cfg.Screen.FloorLine() - cfg.Player.Height; s.Player().Y != want {
			t.Errorf("y = %d, want %d", s.Player().Y, want)
		}
		if s.State() != StateActive {
			t.Error("touching the floor should not end the run")
		}
	})
}

func TestFatalBounds(t *testing.T) {
	cfg := quietConfig()
	cfg.Collision.FatalBounds = true
	s := NewSession(cfg, testTickRate, 1)
	s.player.Y = 5

	s.Step(jump())
	if s.State() != StateGameOver {
		t.Error("hitting the ceiling should end the run with fatal bounds")
	}
}

func TestClassicFloorIsLethal(t *testing.T) {
	classic := NewSession(config.DefaultFlappyConfig(config.VariantClassic), testTickRate, 3)
	flappish := NewSession(testConfig(), testTickRate, 3)

	for i := 0; i < 100; i++ {
		classic.Step(noInput())
		flappish.Step(noInput())
	}

	if classic.State() != StateGameOver {
		t.Fatal("classic bird should die on reaching the floor")
	}
	p := classic.Player()
	if p.Y+p.H < classic.cfg.Screen.FloorLine() {
		t.Errorf("classic bird bottom = %d, want at the floor line %d", p.Y+p.H, classic.cfg.Screen.FloorLine())
	}
	for _, o := range classic.Obstacles() {
		if o.X < p.X+p.W {
			t.Errorf("pipe at x=%d reached the bird, death should come from the floor", o.X)
		}
	}
	if flappish.State() != StateActive {
		t.Error("flappish bird should rest on the floor without dying")
	}
}

func TestClassicSpawnsPastRightEdge(t *testing.T) {
	cfg := config.DefaultFlappyConfig(config.VariantClassic)
	cfg.Physics.Gravity = 0
	s := NewSession(cfg, testTickRate, 5)

	for s.State() == StateActive && len(s.Obstacles()) == 0 {
		s.Step(noInput())
	}
	if len(s.Obstacles()) == 0 {
		t.Fatal("run ended before the first pipe spawned")
	}
	o := s.Obstacles()[0]
	if o.X+cfg.Physics.ScrollSpeed < cfg.Screen.Width {
		t.Errorf("first pipe at x=%d, want spawned at the right edge %d", o.X, cfg.Screen.Width)
	}
	if o.GapSize != 250 || o.Width != 80 {
		t.Errorf("pipe = %+v, want gap 250 and width 80", o)
	}
}

// runUntilOver drops the bird until it hits a pipe.
func runUntilOver(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 2000 && s.State() == StateActive; i++ {
		s.Step(noInput())
	}
	if s.State() != StateGameOver {
		t.Fatal("session never reached game over")
	}
}

func TestRestartEqualsFreshSession(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg, testTickRate, 99)
	runUntilOver(t, s)

	s.Restart()
	fresh := NewSession(cfg, testTickRate, 99)

	if !reflect.DeepEqual(s.Snapshot(), fresh.Snapshot()) {
		t.Fatalf("restarted snapshot differs:\n got %+v\nwant %+v", s.Snapshot(), fresh.Snapshot())
	}

	// The RNG is reseeded too: both produce the same future.
	for i := 0; i < 400; i++ {
		in := noInput()
		if i%20 == 0 {
			in = jump()
		}
		s.Step(in)
		fresh.Step(in)
		if !reflect.DeepEqual(s.Snapshot(), fresh.Snapshot()) {
			t.Fatalf("tick %d: sessions diverged after restart", i)
		}
	}
}

func TestRestartWithSeed(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg, testTickRate, 1)
	runUntilOver(t, s)

	s.RestartWithSeed(5)
	if s.Seed() != 5 {
		t.Errorf("seed = %d, want 5", s.Seed())
	}
	if !reflect.DeepEqual(s.Snapshot(), NewSession(cfg, testTickRate, 5).Snapshot()) {
		t.Error("restart with seed should equal a fresh session with that seed")
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig()
	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = noInput()
		if i%23 == 0 {
			inputs[i] = jump()
		}
	}

	run := func() []Snapshot {
		s := NewSession(cfg, testTickRate, 12345)
		out := make([]Snapshot, 0, len(inputs))
		for _, in := range inputs {
			s.Step(in)
			out = append(out, s.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different runs")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewSession(quietConfig(), testTickRate, 1)
	s.obstacles = append(s.obstacles, Obstacle{X: 600, GapAnchor: 300, GapSize: 300, Width: 100, Height: 700})

	snap := s.Snapshot()
	snap.Obstacles[0].Top.X = -1000
	obs := s.Obstacles()
	obs[0].X = -1000

	if s.obstacles[0].X != 600 {
		t.Error("mutating a snapshot or obstacle copy changed the session")
	}
}

func TestStateString(t *testing.T) {
	if StateActive.String() != "active" || StateGameOver.String() != "game_over" {
		t.Error("unexpected state names")
	}
	if State(9).String() != "unknown" {
		t.Error("unknown state should stringify as unknown")
	}
}
