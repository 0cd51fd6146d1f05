package commands

// Version is overridden at build time with -ldflags "-X .../commands.Version=...".
var Version = "v1.0.0"

const versionTemplate = `critfindings {{.Version}}
`
