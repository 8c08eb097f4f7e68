package monitoring

import "log"

// LogFunc is a printf-style sink
type LogFunc func(format string, v ...interface{})

// bannerLine separates requests and the startup summary in the log
const bannerLine = "========================================"

// Logf carries the request banners and progress lines of the planner service
// and CLI. The planning core never logs.
var Logf LogFunc = log.Printf

// SetLogger swaps the logger; nil silences it
func SetLogger(f LogFunc) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Banner logs the separator line used around request and startup output.
func Banner() {
	Logf(bannerLine)
}
