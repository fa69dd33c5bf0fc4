package almanac

// FiveElementClass is one of the five chart classes. Its only role in the
// engine is fixing the age at which the first decadal fortune period opens.
type FiveElementClass int

const (
	Water2 FiveElementClass = iota // 水二局
	Wood3                          // 木三局
	Metal4                         // 金四局
	Earth5                         // 土五局
	Fire6                          // 火六局
)

var elementClasses = []struct {
	label    string
	startAge int
}{
	{"水二局", 2},
	{"木三局", 3},
	{"金四局", 4},
	{"土五局", 5},
	{"火六局", 6},
}

func (c FiveElementClass) String() string {
	if c < 0 || int(c) >= len(elementClasses) {
		return ""
	}
	return elementClasses[c].label
}

// StartAge is the traditional age at which the class's first decadal period
// begins.
func (c FiveElementClass) StartAge() int {
	if c < 0 || int(c) >= len(elementClasses) {
		return elementClasses[0].startAge
	}
	return elementClasses[c].startAge
}

// ParseFiveElementClass maps the chart engine's class label (e.g. "木三局")
// to its enum value.
func ParseFiveElementClass(label string) (FiveElementClass, bool) {
	for i, e := range elementClasses {
		if e.label == label {
			return FiveElementClass(i), true
		}
	}
	return 0, false
}

// FiveElementClasses returns every class in start-age order.
func FiveElementClasses() []FiveElementClass {
	out := make([]FiveElementClass, len(elementClasses))
	for i := range out {
		out[i] = FiveElementClass(i)
	}
	return out
}
