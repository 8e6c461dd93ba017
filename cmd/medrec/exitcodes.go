package main

// Exit codes returned by medrec commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no repository, unreadable config)
	ExitDataError   = 3 // Data error (malformed catalogue, validation failure, empty catalogue)
	ExitNotFound    = 4 // Medicine not found in the catalogue
)
