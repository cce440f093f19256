package version

// Version is the build version, set with -ldflags "-X github.com/livp123/shieldevt/internal/version.Version=...".
// Version 是构建版本，可通过 -ldflags 设置。
var Version = "dev"
