package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// LimitsProfile selects the default limit profile; empty keeps the file's default.
	LimitsProfile string
	// ProfilesFile is a YAML profiles file; empty uses the built-in profiles.
	ProfilesFile string
	// DroneMaxCapacity and AutonomyRatio override the selected profile when set.
	DroneMaxCapacity *int
	AutonomyRatio    *int

	RunBatchSize int
	LogLevel     string
}
