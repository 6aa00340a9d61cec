package types

// Version is the build version, overwritten by -ldflags at release time
var Version = "dev"

// UserAgent is sent with every outgoing HTTP request
func UserAgent() string {
	return "pkgreport/" + Version
}
