package version

// set at build time:
//   -ldflags "-X github.com/AngellusMortis/sxm-player/cmd/sxm-player/version.version=v0.0.0"
var version = "dev"
