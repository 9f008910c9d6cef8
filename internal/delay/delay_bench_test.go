package delay_test

import (
	"testing"

	"github.com/latticert/precisionloop/internal/cancel"
	"github.com/latticert/precisionloop/internal/clock"
	"github.com/latticert/precisionloop/internal/delay"
	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/platformtimer"
)

func BenchmarkDelay_1ms_Default(b *testing.B) {
	benchmarkDelay(b, delay.Default)
}

func BenchmarkDelay_1ms_Maximum(b *testing.B) {
	benchmarkDelay(b, delay.Maximum)
}

func benchmarkDelay(b *testing.B, precision delay.Precision) {
	clk, err := clock.New()
	if err != nil {
		b.Fatalf("clock.New: %v", err)
	}
	defer clk.Close()
	svc := platformtimer.New()
	c := cancel.NewAtomic()
	dur := extent.FromMilliseconds(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = delay.Delay(clk, svc, c, dur, precision)
	}
}
