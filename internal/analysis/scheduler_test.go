package analysis

import "testing"

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	scheduler := NewRoundRobinScheduler()

	tests := []struct {
		name        string
		paths       []string
		workerCount int
		want        [][]string
	}{
		{
			name:        "even split",
			paths:       []string{"a.robot", "b.robot", "c.robot", "d.robot"},
			workerCount: 2,
			want:        [][]string{{"a.robot", "c.robot"}, {"b.robot", "d.robot"}},
		},
		{
			name:        "more workers than files",
			paths:       []string{"a.robot", "b.robot"},
			workerCount: 4,
			want:        [][]string{{"a.robot"}, {"b.robot"}, {}, {}},
		},
		{
			name:        "zero workers falls back to one",
			paths:       []string{"a.robot", "b.robot"},
			workerCount: 0,
			want:        [][]string{{"a.robot", "b.robot"}},
		},
		{
			name:        "no files",
			paths:       nil,
			workerCount: 3,
			want:        [][]string{{}, {}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheduler.Schedule(tt.paths, tt.workerCount)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d batches, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("batch %d: expected %v, got %v", i, tt.want[i], got[i])
				}
				for j := range tt.want[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("batch %d: expected %v, got %v", i, tt.want[i], got[i])
					}
				}
			}
		})
	}
}
