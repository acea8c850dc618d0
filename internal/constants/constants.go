package constants

const (
	Version        = `0.1.0`
	AppName        = `quire`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `.quire`
	LogDir         = `logs`

	EnvProject = `QUIRE_PROJECT`
)
