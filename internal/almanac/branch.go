package almanac

// EarthlyBranch is one of the twelve fixed calendar branches. Branches form
// a cyclic ring indexed 0..11; all offset arithmetic goes through Add so the
// modulus stays non-negative.
type EarthlyBranch int

const (
	BranchZi   EarthlyBranch = iota // 子
	BranchChou                      // 丑
	BranchYin                       // 寅
	BranchMao                       // 卯
	BranchChen                      // 辰
	BranchSi                        // 巳
	BranchWu                        // 午
	BranchWei                       // 未
	BranchShen                      // 申
	BranchYou                       // 酉
	BranchXu                        // 戌
	BranchHai                       // 亥

	BranchCount = 12
)

var branchNames = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

func (b EarthlyBranch) String() string {
	if b < 0 || b >= BranchCount {
		return ""
	}
	return branchNames[b]
}

// Add steps n positions around the ring. n may be negative; the result is
// always in 0..11.
func (b EarthlyBranch) Add(n int) EarthlyBranch {
	i := (int(b) + n) % BranchCount
	if i < 0 {
		i += BranchCount
	}
	return EarthlyBranch(i)
}

// ParseBranch maps a branch character to its enum value.
func ParseBranch(name string) (EarthlyBranch, bool) {
	for i, n := range branchNames {
		if n == name {
			return EarthlyBranch(i), true
		}
	}
	return 0, false
}

// Branches returns every branch in ring order.
func Branches() []EarthlyBranch {
	out := make([]EarthlyBranch, BranchCount)
	for i := range out {
		out[i] = EarthlyBranch(i)
	}
	return out
}
