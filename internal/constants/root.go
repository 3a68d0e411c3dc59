package constants

const (
	AppName            = "doorcheck"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/doorcheck/doorcheck.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Notify constants
	NotifierLockfileName   = "doorcheck-agent.lock"
	NotificationDurationMs = 5000
	AgentAppIdentifier     = "com.julianstephens.doorcheck"
	AgentExecutablePrefix  = "doorcheck-agent"
)
