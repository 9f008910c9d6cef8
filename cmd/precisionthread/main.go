// Command precisionthread runs a PrecisionThread at a configurable
// frequency for a fixed duration and prints the per-cycle statistics every
// second.
//
// Usage:
//
//	go run ./cmd/precisionthread -hz 75 -duration 5s -precision maximum
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/latticert/precisionloop"
)

func main() {
	hz := flag.Float64("hz", 75, "target cycle frequency in Hz")
	duration := flag.Duration("duration", 5*time.Second, "how long to run before stopping")
	precisionName := flag.String("precision", "high", "spin precision: default|medium|high|maximum")
	flag.Parse()

	precision, err := parsePrecision(*precisionName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	interval := precisionloop.FromHertz(*hz)
	deadline := time.Now().Add(*duration)

	cycles := 0
	thread, err := precisionloop.NewPrecisionThread(func(ev *precisionloop.CycleEvent) error {
		cycles++
		if ev.EventIndex%int64(*hz) == 0 {
			fmt.Printf("cycle=%d missed_total=%d freq=%.2fHz jitter=%s natural=%s discrete=%s\n",
				ev.EventIndex, ev.TotalMissed, ev.Frequency, ev.IntervalJitter, ev.NaturalElapsed, ev.DiscreteElapsed)
		}
		if time.Now().After(deadline) {
			ev.IsStopRequested = true
		}
		return nil
	}, interval, precisionloop.WithPrecision(precision))
	if err != nil {
		fmt.Fprintln(os.Stderr, "precisionthread: new:", err)
		os.Exit(1)
	}

	if err := thread.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "precisionthread: start:", err)
		os.Exit(1)
	}

	if err := thread.WaitForExit(); err != nil {
		fmt.Fprintln(os.Stderr, "precisionthread: exit:", err)
		os.Exit(1)
	}

	fmt.Printf("ran %d cycles at %.2fHz over %s\n", cycles, *hz, *duration)
}

func parsePrecision(name string) (precisionloop.PrecisionOption, error) {
	switch name {
	case "default":
		return precisionloop.Default, nil
	case "medium":
		return precisionloop.Medium, nil
	case "high":
		return precisionloop.High, nil
	case "maximum":
		return precisionloop.Maximum, nil
	default:
		return precisionloop.Default, fmt.Errorf("precisionthread: unknown precision %q", name)
	}
}
