package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose   = "verbose"
	FlagConfig    = "config"
	FlagLogFile   = "log-file"
	FlagStateFile = "state-file"

	// Dashboard flags
	FlagJenkinsURL = "jenkins-url"
	FlagGitHubURL  = "github-url"
	FlagOwner      = "owner"
	FlagRepo       = "repo"
	FlagJobPath    = "job-path"
	FlagInterval   = "interval"
)
