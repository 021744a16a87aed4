package status

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
)

// Write renders every section as an aligned plain-text report.
func Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 4, 4, 2, ' ', 0)
	for _, s := range Sections() {
		s.write(tw)
	}
	return tw.Flush()
}

func (s *Section) write(w io.Writer) {
	s.m.Lock()
	defer s.m.Unlock()

	fmt.Fprintf(w, "[%s]\n", s.Name)
	for _, name := range sortedKeys(len(s.Counters), func(f func(string)) {
		for k := range s.Counters {
			f(k)
		}
	}) {
		fmt.Fprintf(w, "  %s\t%s\n", name, humanize.Comma(s.Counters[name].GetValue()))
	}
	for _, name := range sortedKeys(len(s.Ratios), func(f func(string)) {
		for k := range s.Ratios {
			f(k)
		}
	}) {
		r := s.Ratios[name]
		fmt.Fprintf(w, "  %s\t%.1f%% of %s\n", name, r.Value(), humanize.Comma(r.Denominator))
	}
	for _, name := range sortedKeys(len(s.Breakdowns), func(f func(string)) {
		for k := range s.Breakdowns {
			f(k)
		}
	}) {
		b := s.Breakdowns[name]
		fmt.Fprintf(w, "  %s\t%s total\n", name, humanize.Comma(b.Denominator))
		values := b.Value()
		for _, cat := range b.Categories {
			fmt.Fprintf(w, "    %s\t%.1f%%\n", cat, values[cat])
		}
	}
}

func sortedKeys(n int, each func(func(string))) []string {
	keys := make([]string, 0, n)
	each(func(k string) { keys = append(keys, k) })
	sort.Strings(keys)
	return keys
}
