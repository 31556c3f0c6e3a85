// Command kcals estimates the energy cost of running or walking a route.
//
//	kcals [key=value ...] < track.txt
//	kcals import --db tracks.db --format gpx route.gpx
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kcals: fatal error: %v\n", err)
		os.Exit(1)
	}
}
