package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./reading-tracker.db"

	// DefaultBasePath prefixes every API route
	DefaultBasePath = "/api"

	// DefaultDemoUserID identifies requests that carry no user header
	DefaultDemoUserID = "demo-user"

	// DefaultTotalSegments is how many parts the importer splits a book into
	DefaultTotalSegments = 30
)
