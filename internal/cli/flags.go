package cli

import "rtp/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors int
	SuitePath  string
	NameFilter string
	TestCases  bool
	Keywords   bool
	FailFast   bool
	Strict     bool
	OpenIssues bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors: f.Processors,
		SuitePath:  f.SuitePath,
		NameFilter: f.NameFilter,
		TestCases:  f.TestCases,
		Keywords:   f.Keywords,
		FailFast:   f.FailFast,
		Strict:     f.Strict,
		OpenIssues: f.OpenIssues,
	}
}
