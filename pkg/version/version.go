package version

// Version is the app-global version string, which should be substituted with a
// real value during build
var Version = "UNKNOWN"

// AppName is a name of a service
var AppName = "transactions-api"

// GitHash injected build time
var GitHash = "TBD"

// GitRef injected build time
var GitRef = "TBD"
