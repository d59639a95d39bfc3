package analysis

// Scheduler distributes suite files across workers
type Scheduler interface {
	Schedule(paths []string, workerCount int) [][]string
}

// RoundRobinScheduler distributes suite files evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes suite files evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(paths []string, workerCount int) [][]string {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]string, workerCount)
	for i := range distribution {
		distribution[i] = make([]string, 0)
	}

	for i, path := range paths {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], path)
	}

	return distribution
}
