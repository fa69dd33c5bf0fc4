package almanac

// LifePalaceName anchors every palace walk; the decadal cycle always starts
// here and lookup fallbacks default to it.
const LifePalaceName = "命宮"

// palaceNameRing is the canonical forward order of the twelve life-domain
// palaces, starting from the life palace. The decadal fortune walk follows
// this order or its exact mirror depending on direction.
var palaceNameRing = [BranchCount]string{
	"命宮",
	"兄弟宮",
	"夫妻宮",
	"子女宮",
	"財帛宮",
	"疾厄宮",
	"遷移宮",
	"交友宮",
	"官祿宮",
	"田宅宮",
	"福德宮",
	"父母宮",
}

// PalaceNames returns the canonical forward palace-name order as a copy so
// callers cannot mutate the ring.
func PalaceNames() []string {
	out := make([]string, BranchCount)
	copy(out, palaceNameRing[:])
	return out
}

// PalaceNameAt returns the palace name i steps from the life palace in the
// given direction of travel, with i wrapping around the ring.
func PalaceNameAt(i int, forward bool) string {
	i %= BranchCount
	if i < 0 {
		i += BranchCount
	}
	if forward {
		return palaceNameRing[i]
	}
	return palaceNameRing[(BranchCount-i)%BranchCount]
}
