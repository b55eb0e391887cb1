// Command routectl plans a delivery route from a spreadsheet without running
// the HTTP server.
package main

var Version = "development"

func main() {
	Execute(Version)
}
