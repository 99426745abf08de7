package docx

import (
	"reflect"
	"strings"
	"testing"

	"docxgen/common"
)

func numbered(text string) ListItem {
	return ListItem{Text: text, Kind: common.ListKindNumbered}
}

func bullet(text string) ListItem {
	return ListItem{Text: text, Kind: common.ListKindBullet}
}

func TestOrdinals(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		want   []int
	}{
		{"empty", nil, []int{}},
		{"single run", []Block{numbered("a"), numbered("b"), numbered("c")}, []int{1, 2, 3}},
		{
			"text restarts",
			[]Block{numbered("a"), numbered("b"), TextRun{Text: "x"}, numbered("c")},
			[]int{1, 2, 0, 1},
		},
		{
			"bullet restarts",
			[]Block{numbered("a"), bullet("b"), numbered("c"), numbered("d")},
			[]int{1, 0, 1, 2},
		},
		{"table restarts", []Block{numbered("a"), Table{Rows: 1, Cols: 1}, numbered("b")}, []int{1, 0, 1}},
		{"bullets only", []Block{bullet("a"), bullet("b")}, []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ordinals(tt.blocks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ordinals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilderOrdinals(t *testing.T) {
	b := newTestBuilder(t)
	for _, step := range []func() error{
		func() error { return b.AddNumberedItem("a") },
		func() error { return b.AddNumberedItem("b") },
		func() error { return b.AddText("x") },
		func() error { return b.AddNumberedItem("c") },
	} {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := b.Ordinals(); !reflect.DeepEqual(got, []int{1, 2, 0, 1}) {
		t.Errorf("Ordinals() = %v", got)
	}
}

func TestPlanNumbering(t *testing.T) {
	blocks := []Block{
		bullet("a"),
		numbered("1"),
		numbered("2"),
		TextRun{Text: "x"},
		numbered("1"),
		bullet("b"),
	}
	p := planNumbering(blocks)
	if want := []int{1, 2, 2, 0, 3, 1}; !reflect.DeepEqual(p.numIDs, want) {
		t.Errorf("numIDs = %v, want %v", p.numIDs, want)
	}
	if !p.bullets || p.sequences != 2 || p.empty() {
		t.Errorf("unexpected plan %+v", p)
	}

	if !planNumbering([]Block{TextRun{Text: "x"}}).empty() {
		t.Error("plan without lists must be empty")
	}
}

func TestNumberingPart(t *testing.T) {
	p := planNumbering([]Block{numbered("a"), TextRun{Text: "x"}, numbered("b")})
	doc := numberingPart(p)

	if got := len(doc.FindElements("//w:abstractNum")); got != 2 {
		t.Errorf("abstractNum count = %d, want 2", got)
	}
	nums := doc.FindElements("//w:num")
	if len(nums) != 3 {
		t.Fatalf("num count = %d, want 3", len(nums))
	}
	for i, num := range nums[1:] {
		if id := num.SelectAttrValue("w:numId", ""); id != []string{"2", "3"}[i] {
			t.Errorf("numId = %s", id)
		}
		if so := num.FindElement("w:lvlOverride/w:startOverride"); so == nil || so.SelectAttrValue("w:val", "") != "1" {
			t.Errorf("num %d does not restart", i+2)
		}
	}
	fmts := doc.FindElements("//w:numFmt")
	var got []string
	for _, f := range fmts {
		got = append(got, f.SelectAttrValue("w:val", ""))
	}
	if strings.Join(got, ",") != "bullet,decimal" {
		t.Errorf("formats = %v", got)
	}
}
