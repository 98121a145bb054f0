package river

import "testing"

func TestParseLineType(t *testing.T) {
	tests := []struct {
		input   string
		want    LineType
		wantErr bool
	}{
		{input: "all", want: LineTypeAll},
		{input: "sn", want: LineSmallNormal},
		{input: "au", want: LineArtificialUnderground},
		{input: "細河川（通常部）", want: LineSmallNormal},
		{input: "河川中心線（枯れ川部）", want: LineDry},
		{input: "不明", want: LineUnknown},
		{input: "", want: LineUnknown},
		{input: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLineType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLineType(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLineType(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLineType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLineTypesUnion(t *testing.T) {
	got, err := ParseLineTypes("sn,sd,n")
	if err != nil {
		t.Fatalf("ParseLineTypes error: %v", err)
	}
	want := LineSmallNormal | LineSmallDry | LineNormal
	if got != want {
		t.Errorf("ParseLineTypes = %v, want %v", got, want)
	}

	if _, err := ParseLineTypes("sn,bogus"); err == nil {
		t.Error("expected error for list containing an unknown token")
	}

	full, err := ParseLineTypes("sn,sd,n,d,ao,au,w,o,u")
	if err != nil {
		t.Fatalf("ParseLineTypes error: %v", err)
	}
	if full != LineTypeAll {
		t.Errorf("full code list = %v, want LineTypeAll", full)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "all", want: CategoryAll},
		{input: "p", want: CategoryPrimary},
		{input: "一級河川", want: CategoryPrimary},
		{input: "普通河川", want: CategoryRegular},
		{input: "", want: CategoryUnknown},
		{input: "x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCategory(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCategoriesUnion(t *testing.T) {
	got, err := ParseCategories("p,s")
	if err != nil {
		t.Fatalf("ParseCategories error: %v", err)
	}
	if got != CategoryPrimary|CategorySecondary {
		t.Errorf("ParseCategories = %v, want primary|secondary", got)
	}
}

func TestIntersects(t *testing.T) {
	set := LineSmallNormal | LineNormal
	if !set.Intersects(LineNormal) {
		t.Error("expected intersection with LineNormal")
	}
	if set.Intersects(LineDry) {
		t.Error("unexpected intersection with LineDry")
	}

	cats := CategoryPrimary | CategoryQuasi
	if !cats.Intersects(CategoryAll) {
		t.Error("expected intersection with CategoryAll")
	}
	if cats.Intersects(CategoryOther) {
		t.Error("unexpected intersection with CategoryOther")
	}
}

func TestLineTypeString(t *testing.T) {
	set := LineSmallNormal | LineWaterway
	if got := set.String(); got != "細河川（通常部）|用水路" {
		t.Errorf("String = %q", got)
	}
	if got := LineType(0).String(); got != "(none)" {
		t.Errorf("String = %q, want (none)", got)
	}
}
