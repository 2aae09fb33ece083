package config

const (
	// DefaultDatabasePath is the default path for the notes database
	DefaultDatabasePath = "./tolino-notes.db"

	// DefaultInputFile is the name the e-reader gives its export
	DefaultInputFile = "./notes.txt"

	// DefaultOutputDir is where converted book files are written
	DefaultOutputDir = "./markdown"
)
