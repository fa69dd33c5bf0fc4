// Package almanac holds the closed calendrical enumerations the fortune
// engine is built on: the ten heavenly stems, the twelve earthly branches,
// the five-element classes, and the canonical palace-name ring. All of it is
// immutable process-wide data; nothing here touches the clock.
package almanac

// HeavenlyStem is one of the ten fixed calendar stems.
type HeavenlyStem int

const (
	StemJia HeavenlyStem = iota // 甲
	StemYi                      // 乙
	StemBing                    // 丙
	StemDing                    // 丁
	StemWu                      // 戊
	StemJi                      // 己
	StemGeng                    // 庚
	StemXin                     // 辛
	StemRen                     // 壬
	StemGui                     // 癸

	StemCount = 10
)

var stemNames = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

func (s HeavenlyStem) String() string {
	if s < 0 || s >= StemCount {
		return ""
	}
	return stemNames[s]
}

// Yang reports whether the stem belongs to the yang parity class
// (甲丙戊庚壬). The alternating partition is what decides decadal fortune
// direction; it is the only behavior stems carry.
func (s HeavenlyStem) Yang() bool {
	return s >= 0 && s < StemCount && s%2 == 0
}

// ParseStem maps a stem character to its enum value.
func ParseStem(name string) (HeavenlyStem, bool) {
	for i, n := range stemNames {
		if n == name {
			return HeavenlyStem(i), true
		}
	}
	return 0, false
}

// Stems returns every stem in canonical order.
func Stems() []HeavenlyStem {
	out := make([]HeavenlyStem, StemCount)
	for i := range out {
		out[i] = HeavenlyStem(i)
	}
	return out
}
