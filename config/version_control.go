package config

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executable
	Main_version = "v1.1.0"

	// Modular tools
	Benchmark     = "v1.0.1"
	Shift_Search  = "v1.1.0"
	Shift_Predict = "v1.0.0"
	Candidates    = "v1.0.0"
	Sanity_check  = "v1.0.1"
	Model_Format  = "v1"
)
