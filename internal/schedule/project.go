package schedule

import (
	"time"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

// Project trims every full-day row of full to the visible window. Position k
// of each output row holds the full-day cell labeled visible[k]; labels that
// are not in allSlots project to empty cells. Output rows always have
// len(visible) cells.
func Project(full Grid, halls []string, dates []time.Time, allSlots, visible []string) Grid {
	index := make([]int, len(visible))
	for k, label := range visible {
		index[k] = timegrid.SlotIndex(label, allSlots)
	}

	out := newGrid(halls, dates, len(visible))
	for _, hall := range halls {
		for _, d := range dates {
			key := dateutil.FormatDate(d)
			src := full.RowByKey(hall, key)
			dst := out[hall][key]
			for k, i := range index {
				if i >= 0 && i < len(src) {
					dst[k] = src[i]
				}
			}
		}
	}
	return out
}
