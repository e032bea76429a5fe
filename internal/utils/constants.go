package utils

const (
	// ApplicationName is the command name and the prefix of user-facing messages.
	ApplicationName = "textread"
	// SettingsFileName is the marker file holding per-project settings.
	SettingsFileName = "text-read-settings.txt"
	// ConfigFileName is the application configuration file name.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".textread"
	// BackupParentDirectoryName is the top-level directory that holds the backup directory.
	BackupParentDirectoryName = "target"
	// BackupDirectoryName is the directory under BackupParentDirectoryName that holds snapshots.
	BackupDirectoryName = "backup"
	// BackupSegment is the relative path segment excluded from every scan.
	BackupSegment = BackupParentDirectoryName + pathSegmentSeparator + BackupDirectoryName
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a failure to construct the logger.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "textread failed"
)
