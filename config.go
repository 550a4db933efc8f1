package skillmd

import "github.com/goliatone/go-skillmd/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrDocsHostRequired        = runtimeconfig.ErrDocsHostRequired
	ErrProbeCacheRequiresLinks = runtimeconfig.ErrProbeCacheRequiresLinks
	ErrProbeCacheDSNRequired   = runtimeconfig.ErrProbeCacheDSNRequired
	ErrProbeTimeoutInvalid     = runtimeconfig.ErrProbeTimeoutInvalid
	ErrTokenCeilingInvalid     = runtimeconfig.ErrTokenCeilingInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	DocsConfig     = runtimeconfig.DocsConfig
	ProbeConfig    = runtimeconfig.ProbeConfig
	TokenConfig    = runtimeconfig.TokenConfig
	RefdataConfig  = runtimeconfig.RefdataConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
