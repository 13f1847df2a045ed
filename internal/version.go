package internal

// Set by ldflags at build time.
var version = "dev"

func Version() string {
	return version
}
