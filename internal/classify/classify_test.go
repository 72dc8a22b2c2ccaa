package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmissionClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact application", "申請入學", "申請入學"},
		{"bracketed natural track", "(自然組)", "自然組"},
		{"embedded natural track wins over application", "申請入學(自然組)", "自然組"},
		{"embedded social track", "個人申請社會組", "社會組"},
		{"star recommendation", "繁星推薦", "繁星推薦"},
		{"star short form", "繁星", "繁星推薦"},
		{"star with suffix is not exact", "繁星推薦入學", FallbackLabel},
		{"overseas student", "僑生", "僑生"},
		{"vision program", "【願景】", "願景"},
		{"vision without brackets", "願景", FallbackLabel},
		{"empty", "", FallbackLabel},
		{"whitespace only", "   ", FallbackLabel},
		{"newline only", "\n\t", FallbackLabel},
		{"unknown channel", "特殊選才", FallbackLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admission.Classify(tt.input))
		})
	}
}

func TestSchoolTypeClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact national", "國立", "國立"},
		{"exact foundation", "財團法人", "財團"},
		{"exact mainland business", "大陸台商", FallbackLabel},
		{"exact private university transfer", "私大轉", "私大轉"},
		{"national school name", "國立新竹高級中學", "國立"},
		{"municipal school name", "台北市立建國高級中學", "市立"},
		{"county school name", "縣立大里高中", "縣立"},
		{"foundation beats private keyword", "財團法人私立延平中學", "財團"},
		{"private school name", "私立薇閣高級中學", "私立"},
		{"overseas keyword", "海外聯招", "僑生"},
		{"technical college", "XX科技大學", "科大轉"},
		{"foreign country", "日本東京高校", FallbackLabel},
		{"empty", "", FallbackLabel},
		{"whitespace", "  \t", FallbackLabel},
		{"unknown", "自學", FallbackLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SchoolType.Classify(tt.input))
		})
	}
}

func TestRegionClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"north", "台北市", RegionNorth},
		{"north glyph variant", "臺北市", RegionNorth},
		{"central", "台中市", RegionCentral},
		{"central glyph variant", "臺中市", RegionCentral},
		{"south", "高雄市", RegionSouth},
		{"east glyph variant", "臺東縣", RegionEast},
		{"padded", "  宜蘭縣 ", RegionNorth},
		{"unknown locality", "澎湖縣", FallbackLabel},
		{"empty", "", FallbackLabel},
		{"whitespace", "   ", FallbackLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Region.Classify(tt.input))
		})
	}
}

func TestRegionGlyphVariantsAgree(t *testing.T) {
	pairs := [][2]string{
		{"台北市", "臺北市"},
		{"台中市", "臺中市"},
		{"台南市", "臺南市"},
		{"台東縣", "臺東縣"},
	}
	for _, p := range pairs {
		assert.Equal(t, Region.Classify(p[0]), Region.Classify(p[1]), "variants of %s", p[0])
	}
}

// Every classifier output must be a member of its declared taxonomy, for
// any input, and repeated calls must agree.
func TestClassifiersAreTotalAndDeterministic(t *testing.T) {
	inputs := []string{
		"", "   ", "\n", "申請入學", "(自然組)", "繁星", "國立新竹高級中學",
		"臺北市", "台北市", "random text", "123", "私立學校", "日本", "【願景】",
		"财团", "NaN", "僑生", "海外", "高雄市",
	}

	for _, name := range []string{"admission", "school", "region"} {
		c, ok := Lookup(name)
		require.True(t, ok, "classifier %s not registered", name)

		members := make(map[string]bool)
		for _, label := range c.Taxonomy() {
			members[label] = true
		}
		assert.True(t, members[FallbackLabel], "%s taxonomy must include fallback", name)

		for _, in := range inputs {
			first := c.Classify(in)
			assert.True(t, members[first], "%s(%q) = %q not in taxonomy", name, in, first)
			assert.Equal(t, first, c.Classify(in), "%s(%q) not deterministic", name, in)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("nope")
	assert.False(t, ok)
}
