package camera

import (
	"math"

	"hoodatlas/internal/config"
	"hoodatlas/internal/debug"
)

// OffsetConfig carries the live measurements the offset calculation needs.
// It is rebuilt from the host on every call, never cached; both the viewport
// size and the card content change between calls.
type OffsetConfig struct {
	ViewportWidth      int
	ViewportHeight     int
	CardHeightEstimate int
	TailHeight         int
	MarkerRadius       int
	DisclaimerHeight   int
}

// ComputeOffset returns the vertical pixel offset that jointly centers a
// marker and the card that will open above it. A positive offset places the
// marker below the viewport center, leaving room for the card.
//
// When the viewport is too short to center the card/marker combo without
// clipping, the calculation degrades to keeping the whole combo visible
// under a top margin instead of producing an off-screen offset.
func ComputeOffset(cfg OffsetConfig, tuning config.Tuning, overrides Overrides) int {
	if px, ok := overrides.OffsetPx(cfg.ViewportHeight); ok {
		debug.Log("offset: override %dpx", px)
		return px
	}

	cardHeight := cfg.CardHeightEstimate
	if cardHeight <= 0 {
		cardHeight = tuning.CardHeightForWidth(cfg.ViewportWidth)
	}

	viewportHeight := cfg.ViewportHeight - cfg.DisclaimerHeight
	if viewportHeight <= 0 {
		debug.Log("offset: unusable viewport height %d, using 0", cfg.ViewportHeight)
		return 0
	}

	comboHeight := cardHeight + cfg.TailHeight + cfg.MarkerRadius

	if viewportHeight >= tuning.MinCenterHeight && comboHeight < viewportHeight-tuning.CenterMargin {
		// Room to truly center: the combo's midpoint sits above the marker
		// by half the card-and-tail extent, less the marker's own radius
		offset := float64(cardHeight+cfg.TailHeight-cfg.MarkerRadius) / 2
		return int(math.Round(offset))
	}

	// Short viewport (mobile landscape, iframe embeds): pin the combo under
	// a top margin so the card stays fully visible
	offset := tuning.MarginTop + comboHeight - viewportHeight/2
	if offset < 0 {
		offset = 0
	}
	return offset
}
