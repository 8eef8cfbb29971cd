package section

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/evanbei/nodegen/internal/models"
	"github.com/evanbei/nodegen/internal/portal"
)

func TestTable_MatchesTitles(t *testing.T) {
	cases := []struct {
		title string
		kind  Kind
		want  bool
	}{
		{"Human Links", Human, true},
		{"给人看的入口", Human, true},
		{"For Machines", Machine, true},
		{"Agent endpoints", Machine, true},
		{"AI", Machine, true},
		{"机器入口", Machine, true},
		{"Executable Pages", Executable, true},
		{"可执行页面", Executable, true},
		{"网页即接口", Executable, true},
		{"Contact", Human, false},
		{"Contact", Machine, false},
		{"Projects", Executable, false},
	}
	for _, tc := range cases {
		got := Find([]portal.Section{{Title: tc.title}}, tc.kind).Title == tc.title
		if got != tc.want {
			t.Errorf("Find(%q, %s) matched = %v, want %v", tc.title, tc.kind, got, tc.want)
		}
	}
}

func TestPick_FirstMatchWins(t *testing.T) {
	sections := []portal.Section{
		{Title: "Notes"},
		{Title: "Agent pages", Items: []portal.Item{{URL: "https://a/1"}}},
		{Title: "Machine", Items: []portal.Item{{URL: "https://a/2"}}},
	}
	got := Find(sections, Machine)
	if got.Title != "Agent pages" {
		t.Errorf("title = %q, want %q", got.Title, "Agent pages")
	}
}

func TestPick_NoMatchIsEmpty(t *testing.T) {
	got := Pick([]portal.Section{{Title: "About"}}, []string{"human"})
	if got.Title != "" || len(got.Items) != 0 {
		t.Errorf("expected empty section, got %+v", got)
	}
	if got := Pick(nil, []string{"human"}); len(got.Items) != 0 {
		t.Errorf("expected empty section for nil input, got %+v", got)
	}
}

func TestPick_KeywordCaseInsensitive(t *testing.T) {
	got := Pick([]portal.Section{{Title: "HUMAN"}}, []string{"Human"})
	if got.Title != "HUMAN" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestMapItems(t *testing.T) {
	items := []portal.Item{
		{URL: "https://x/"},
		{Name: "no url"},
		{Label: "Labelled", URL: "https://y/", Meta: "m"},
		{Name: "Named", Label: "ignored", URL: "https://z/"},
	}
	want := []models.LinkItem{
		{Name: "https://x/", URL: "https://x/", Meta: ""},
		{Name: "Labelled", URL: "https://y/", Meta: "m"},
		{Name: "Named", URL: "https://z/", Meta: ""},
	}
	if diff := cmp.Diff(want, MapItems(items)); diff != "" {
		t.Errorf("MapItems mismatch (-want +got):\n%s", diff)
	}
}

func TestMapItems_NeverNil(t *testing.T) {
	if got := MapItems(nil); got == nil || len(got) != 0 {
		t.Errorf("MapItems(nil) = %#v, want empty slice", got)
	}
}
