package pythoneval

import (
	"github.com/kiteco/pyeval/kite-golib/status"
)

var (
	section = status.NewSection("pythoneval")

	executionsCount      = section.Counter("executions")
	guardTripsCount      = section.Counter("recursion guard trips")
	truncatedCount       = section.Counter("truncated results")
	memoRatio            = section.Ratio("memo hit")
	unsupportedBreakdown = section.Breakdown("unsupported operations")
)
