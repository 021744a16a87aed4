package kitelog

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"
)

type phase struct {
	name     string
	duration time.Duration
}

// Durations collects the named phases of one unit of work
type Durations []phase

// Record appends a phase
func (t *Durations) Record(name string, d time.Duration) {
	*t = append(*t, phase{name, d})
}

// Time starts timing a phase, which is recorded when the returned func is called
func (t *Durations) Time(name string) func() {
	begin := time.Now()
	return func() { t.Record(name, time.Since(begin)) }
}

// Total is the sum of the recorded phases
func (t Durations) Total() time.Duration {
	var total time.Duration
	for _, p := range t {
		total += p.duration
	}
	return total
}

// Flush writes one aligned line per phase with its share of the total, then resets t
func (t *Durations) Flush(i Interface) {
	if len(*t) == 0 {
		return
	}
	total := t.Total()

	var b bytes.Buffer
	tw := tabwriter.NewWriter(&b, 4, 4, 1, ' ', tabwriter.AlignRight)
	for _, p := range *t {
		var share float64
		if total > 0 {
			share = 100 * float64(p.duration) / float64(total)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t\n", p.name, p.duration, share)
	}
	fmt.Fprintf(tw, "total\t%s\t\t\n", total)
	tw.Flush()

	i.Println(b.String())
	*t = nil
}

// WithDurations returns a derived Logger with an empty Durations
func (l *Logger) WithDurations() *Logger {
	out := *l
	out.Durations = nil
	return &out
}
