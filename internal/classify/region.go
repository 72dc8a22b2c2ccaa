package classify

import "strings"

// Region labels, in declared display order.
const (
	RegionNorth   = "北台灣"
	RegionCentral = "中台灣"
	RegionSouth   = "南台灣"
	RegionEast    = "東台灣"
)

// Region classifies home locality (county/city) names.
//
// Locality names arrive with two glyph variants of the Tai- prefix (台/臺);
// input is canonicalized to 台 before the lookup, and the table is keyed by
// canonical names only. Anything not in the table, including blanks, maps
// to the fallback label.
var Region Labeler = &regionClassifier{
	localities: map[string]string{
		"台北市": RegionNorth,
		"新北市": RegionNorth,
		"基隆市": RegionNorth,
		"宜蘭縣": RegionNorth,
		"桃園市": RegionNorth,
		"新竹市": RegionNorth,
		"新竹縣": RegionNorth,

		"苗栗縣": RegionCentral,
		"台中市": RegionCentral,
		"彰化縣": RegionCentral,
		"南投縣": RegionCentral,
		"雲林縣": RegionCentral,

		"嘉義市": RegionSouth,
		"嘉義縣": RegionSouth,
		"台南市": RegionSouth,
		"高雄市": RegionSouth,
		"屏東縣": RegionSouth,

		"花蓮縣": RegionEast,
		"台東縣": RegionEast,
	},
}

// regionClassifier is a direct lookup table rather than an ordered rule
// list: locality names are closed-set identifiers, not free text.
type regionClassifier struct {
	localities map[string]string
}

func (c *regionClassifier) Name() string { return "region" }

func (c *regionClassifier) Classify(raw string) string {
	v := CanonicalLocality(raw)
	if v == "" {
		return FallbackLabel
	}
	if region, ok := c.localities[v]; ok {
		return region
	}
	return FallbackLabel
}

func (c *regionClassifier) Taxonomy() []string {
	return []string{RegionNorth, RegionCentral, RegionSouth, RegionEast, FallbackLabel}
}

// CanonicalLocality trims a locality name and normalizes the 臺 glyph
// variant to 台 so both spellings share one table entry.
func CanonicalLocality(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), "臺", "台")
}
