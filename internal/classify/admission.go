package classify

// Admission classifies admission-channel descriptions.
//
// Track markers (自然組 / 社會組) are evaluated first: source sheets embed
// them inside longer admission strings ("申請入學(自然組)"), so testing the
// application-admission exact match earlier would swallow them. The
// remaining channels only match exact values, with 繁星 accepted as a short
// form of 繁星推薦 and 願景 arriving wrapped in lenticular brackets.
var Admission Labeler = newRuleClassifier(
	"admission",
	[]string{"申請入學", "繁星推薦", "自然組", "社會組", "僑生", "願景", FallbackLabel},
	[]Rule{
		{Label: "自然組", Patterns: patterns(`^\(自然組\)$`, `自然組`)},
		{Label: "社會組", Patterns: patterns(`^\(社會組\)$`, `社會組`)},
		{Label: "繁星推薦", Patterns: patterns(`^繁星推薦$`, `^繁星$`)},
		{Label: "申請入學", Patterns: patterns(`^申請入學$`)},
		{Label: "僑生", Patterns: patterns(`^僑生$`)},
		{Label: "願景", Patterns: patterns(`^【願景】$`)},
	},
)
