package classify

// SchoolType classifies prior-school names and types.
//
// Two phases, expressed as one ordered rule list: anchored exact matches
// for the short type codes that appear verbatim in source sheets, then
// keyword containment in priority order. 財團法人 must precede 私立 (a
// foundation-private school name contains both), and the transfer rules
// require a university/college keyword alongside the sector keyword. A
// trailing list of foreign country names folds overseas schools into the
// fallback bucket.
var SchoolType Labeler = newRuleClassifier(
	"school",
	[]string{"國立", "市立", "縣立", "私立", "財團", "國大轉", "私大轉", "科大轉", "僑生", FallbackLabel},
	[]Rule{
		// Exact type codes.
		{Label: "國立", Patterns: patterns(`^國立$`)},
		{Label: "私立", Patterns: patterns(`^私立$`)},
		{Label: "財團", Patterns: patterns(`^財團法人$`)},
		{Label: "市立", Patterns: patterns(`^市立$`)},
		{Label: FallbackLabel, Patterns: patterns(`^大陸台商$`)},
		{Label: "私大轉", Patterns: patterns(`^私大轉$`)},
		{Label: "科大轉", Patterns: patterns(`^科大轉$`)},
		{Label: "國大轉", Patterns: patterns(`^國大轉$`)},
		{Label: "僑生", Patterns: patterns(`^僑生$`)},

		// Keyword containment, priority order.
		{Label: "國立", Patterns: patterns(`國立`)},
		{Label: "市立", Patterns: patterns(`市立`)},
		{Label: "縣立", Patterns: patterns(`縣立`)},
		{Label: "財團", Patterns: patterns(`財團法人`)},
		{Label: "私立", Patterns: patterns(`私立`)},
		{Label: "僑生", Patterns: patterns(`僑`, `海外`)},
		{Label: "國大轉", Patterns: patterns(`國立.*(大學|學院)`, `(大學|學院).*國立`)},
		{Label: "私大轉", Patterns: patterns(`私立.*(大學|學院)`, `(大學|學院).*私立`)},
		{Label: "科大轉", Patterns: patterns(`科技`, `技術學院`, `專科`)},

		// Foreign schools fold into the fallback bucket.
		{Label: FallbackLabel, Patterns: patterns(
			`美國|加拿大|澳洲|紐西蘭|英國|德國|法國|日本|韓國|馬來西亞|印尼|越南|泰國|緬甸|柬埔寨|新加坡|汶萊|菲律賓`,
		)},
	},
)
