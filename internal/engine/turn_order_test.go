package engine

import (
	"testing"
)

func TestSnakeIndex(t *testing.T) {
	cases := []struct {
		name       string
		numPlayers int
		picks      int
		want       []int
	}{
		{
			name:       "three players two rounds",
			numPlayers: 3,
			picks:      6,
			want:       []int{0, 1, 2, 2, 1, 0},
		},
		{
			name:       "two players four rounds",
			numPlayers: 2,
			picks:      8,
			want:       []int{0, 1, 1, 0, 0, 1, 1, 0},
		},
		{
			name:       "single player always picks",
			numPlayers: 1,
			picks:      3,
			want:       []int{0, 0, 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for pick := 0; pick < tc.picks; pick++ {
				if got := SnakeIndex(pick, tc.numPlayers); got != tc.want[pick] {
					t.Fatalf("pick %d: expected player %d, got %d", pick, tc.want[pick], got)
				}
			}
		})
	}
}

func TestTotalPicks(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want int
	}{
		{
			name: "leader adds one pick per player",
			cfg:  Config{NumPlayers: 2, PicksPerPlayer: 3, DraftLeader: true},
			want: 8,
		},
		{
			name: "leader and ship",
			cfg:  Config{NumPlayers: 3, PicksPerPlayer: 2, DraftLeader: true, DraftShip: true},
			want: 12,
		},
		{
			name: "crew only",
			cfg:  Config{NumPlayers: 4, PicksPerPlayer: 5},
			want: 20,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalPicks(tc.cfg); got != tc.want {
				t.Fatalf("expected %d picks, got %d", tc.want, got)
			}
		})
	}
}

func TestSchedule(t *testing.T) {
	steps := Schedule(Config{NumPlayers: 3, PicksPerPlayer: 1, DraftShip: true})
	if len(steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(steps))
	}
	for i, step := range steps {
		if step.Pick != i {
			t.Fatalf("step %d has pick %d", i, step.Pick)
		}
		if step.Round != i/3 {
			t.Fatalf("step %d: expected round %d, got %d", i, i/3, step.Round)
		}
	}
	if steps[3].Player != 2 || steps[5].Player != 0 {
		t.Fatalf("second round should run in reverse, got %+v", steps[3:])
	}

	if steps := Schedule(Config{}); steps != nil {
		t.Fatalf("expected no steps without players, got %v", steps)
	}
}
