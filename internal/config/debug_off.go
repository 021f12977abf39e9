//go:build !twinpanedebug

package config

// debugBuild selects the debug settings file by default.
const debugBuild = false
