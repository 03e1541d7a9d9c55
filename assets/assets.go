package assets

// AppName and Version are stamped by the packager with -ldflags -X.
var AppName = "Simple Molkky Score"

var Version = "0.0.0-dev"
