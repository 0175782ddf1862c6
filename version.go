package lambdacalc

// Version and BuildDate identify a release of the library and the lc tool.
// Both may be overridden at link time:
//
//	go build -ldflags "-X github.com/jackrosenthal/lambdacalc.Version=v0.4.0"
var (
	Version   = "0.3.1"
	BuildDate = "unknown"
)
