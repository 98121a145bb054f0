// Package river classifies and collects river centerline features from
// fetched vector tile documents.
package river

import (
	"fmt"
	"strings"
)

// LineType classifies a river centerline segment. It is a bit set: a value
// parsed from a feature property holds a single bit, a requested filter may
// hold several.
type LineType uint16

const (
	LineSmallNormal LineType = 1 << iota
	LineSmallDry
	LineNormal
	LineDry
	LineArtificialOpen
	LineArtificialUnderground
	LineWaterway
	LineOther
	LineUnknown
)

// LineTypeAll selects every line type.
const LineTypeAll = LineSmallNormal | LineSmallDry | LineNormal | LineDry |
	LineArtificialOpen | LineArtificialUnderground | LineWaterway | LineOther | LineUnknown

// lineTypeTable maps both the property labels found in tile documents and
// the short command-line codes to their flag bits. The empty string appears
// in source data for segments of unknown type.
var lineTypeTable = map[string]LineType{
	"細河川（通常部）":     LineSmallNormal,
	"細河川（枯れ川部）":    LineSmallDry,
	"河川中心線（通常部）":   LineNormal,
	"河川中心線（枯れ川部）":  LineDry,
	"人工水路（空間）":     LineArtificialOpen,
	"人工水路（地下）":     LineArtificialUnderground,
	"用水路":          LineWaterway,
	"その他":          LineOther,
	"不明":           LineUnknown,
	"":             LineUnknown,
	"sn":           LineSmallNormal,
	"sd":           LineSmallDry,
	"n":            LineNormal,
	"d":            LineDry,
	"ao":           LineArtificialOpen,
	"au":           LineArtificialUnderground,
	"w":            LineWaterway,
	"o":            LineOther,
	"u":            LineUnknown,
}

var lineTypeNames = map[LineType]string{
	LineSmallNormal:           "細河川（通常部）",
	LineSmallDry:              "細河川（枯れ川部）",
	LineNormal:                "河川中心線（通常部）",
	LineDry:                   "河川中心線（枯れ川部）",
	LineArtificialOpen:        "人工水路（空間）",
	LineArtificialUnderground: "人工水路（地下）",
	LineWaterway:              "用水路",
	LineOther:                 "その他",
	LineUnknown:               "不明",
}

// ParseLineType parses a single label or short code. "all" yields the full
// set.
func ParseLineType(s string) (LineType, error) {
	if s == "all" {
		return LineTypeAll, nil
	}
	if f, ok := lineTypeTable[s]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unrecognized line type %q", s)
}

// ParseLineTypes parses a comma-separated list into the union of its flags.
func ParseLineTypes(s string) (LineType, error) {
	var set LineType
	for _, tok := range strings.Split(s, ",") {
		f, err := ParseLineType(tok)
		if err != nil {
			return 0, err
		}
		set |= f
	}
	return set, nil
}

// Intersects reports whether the two sets share any flag.
func (f LineType) Intersects(other LineType) bool { return f&other != 0 }

func (f LineType) String() string {
	var parts []string
	for bit := LineSmallNormal; bit <= LineUnknown; bit <<= 1 {
		if f&bit != 0 {
			parts = append(parts, lineTypeNames[bit])
		}
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, "|")
}

// Category classifies a river by its administrative category. Like LineType
// it is a bit set.
type Category uint8

const (
	CategoryPrimary Category = 1 << iota
	CategorySecondary
	CategoryQuasi
	CategoryRegular
	CategoryOther
	CategoryUnknown
)

// CategoryAll selects every category.
const CategoryAll = CategoryPrimary | CategorySecondary | CategoryQuasi |
	CategoryRegular | CategoryOther | CategoryUnknown

var categoryTable = map[string]Category{
	"一級河川": CategoryPrimary,
	"二級河川": CategorySecondary,
	"準用河川": CategoryQuasi,
	"普通河川": CategoryRegular,
	"その他":  CategoryOther,
	"不明":   CategoryUnknown,
	"":     CategoryUnknown,
	"p":    CategoryPrimary,
	"s":    CategorySecondary,
	"q":    CategoryQuasi,
	"r":    CategoryRegular,
	"o":    CategoryOther,
	"u":    CategoryUnknown,
}

var categoryNames = map[Category]string{
	CategoryPrimary:   "一級河川",
	CategorySecondary: "二級河川",
	CategoryQuasi:     "準用河川",
	CategoryRegular:   "普通河川",
	CategoryOther:     "その他",
	CategoryUnknown:   "不明",
}

// ParseCategory parses a single label or short code. "all" yields the full
// set.
func ParseCategory(s string) (Category, error) {
	if s == "all" {
		return CategoryAll, nil
	}
	if f, ok := categoryTable[s]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unrecognized river category %q", s)
}

// ParseCategories parses a comma-separated list into the union of its flags.
func ParseCategories(s string) (Category, error) {
	var set Category
	for _, tok := range strings.Split(s, ",") {
		f, err := ParseCategory(tok)
		if err != nil {
			return 0, err
		}
		set |= f
	}
	return set, nil
}

// Intersects reports whether the two sets share any flag.
func (f Category) Intersects(other Category) bool { return f&other != 0 }

func (f Category) String() string {
	var parts []string
	for bit := CategoryPrimary; bit <= CategoryUnknown; bit <<= 1 {
		if f&bit != 0 {
			parts = append(parts, categoryNames[bit])
		}
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, "|")
}
