// Command delay measures the accuracy of the precision delay primitive at
// each precision setting: the mean, standard deviation, and overshoot of
// the actual elapsed time across a batch of identical delays.
//
// Usage:
//
//	go run ./cmd/delay -ms 5 -n 20
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/latticert/precisionloop"
)

func main() {
	ms := flag.Float64("ms", 5, "delay length in milliseconds")
	n := flag.Int("n", 20, "delays per precision setting")
	flag.Parse()

	dur := precisionloop.FromMilliseconds(*ms)
	settings := []struct {
		name string
		opt  precisionloop.PrecisionOption
	}{
		{"default", precisionloop.Default},
		{"medium", precisionloop.Medium},
		{"high", precisionloop.High},
		{"maximum", precisionloop.Maximum},
	}

	fmt.Printf("Measuring %d delays of %s per precision setting\n", *n, dur)
	fmt.Println("─────────────────────────────────────────────────")

	for _, s := range settings {
		elapsed := make([]float64, *n)
		for i := range elapsed {
			start := time.Now()
			if err := precisionloop.Delay(dur, s.opt, nil); err != nil {
				fmt.Fprintln(os.Stderr, "delay:", err)
				os.Exit(1)
			}
			elapsed[i] = float64(time.Since(start).Nanoseconds()) / 1e6
		}

		var sum float64
		for _, e := range elapsed {
			sum += e
		}
		mean := sum / float64(*n)
		var sumSq float64
		for _, e := range elapsed {
			d := e - mean
			sumSq += d * d
		}
		stddev := math.Sqrt(sumSq / float64(*n))

		fmt.Printf("  %-8s mean %.3fms  stddev %.3fms  overshoot %+.3fms\n",
			s.name, mean, stddev, mean-*ms)
	}
}
