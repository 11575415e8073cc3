package profile

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func strp(s string) *string { return &s }

func TestParseSkills(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"js, node , react", []string{"js", "node", "react"}},
		{"go,rust", []string{"go", "rust"}},
		{" go ,, rust ,", []string{"go", "rust"}},
		{"", []string{}},
	}
	for _, tc := range cases {
		got := ParseSkills(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseSkills(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestProfile_AddExperienceMostRecentFirst(t *testing.T) {
	var p Profile
	p.AddExperience(Experience{ID: "e1"})
	p.AddExperience(Experience{ID: "e2"})

	if len(p.Experience) != 2 || p.Experience[0].ID != "e2" || p.Experience[1].ID != "e1" {
		t.Fatalf("unexpected order: %+v", p.Experience)
	}
}

func TestProfile_RemoveExperiencePreservesOrder(t *testing.T) {
	var p Profile
	for _, id := range []string{"a", "b", "c", "d"} {
		p.AddExperience(Experience{ID: id})
	}

	if !p.RemoveExperience("c") {
		t.Fatalf("expected removal")
	}
	var ids []string
	for _, e := range p.Experience {
		ids = append(ids, e.ID)
	}
	if !reflect.DeepEqual(ids, []string{"d", "b", "a"}) {
		t.Fatalf("unexpected ids after removal: %v", ids)
	}

	if p.RemoveExperience("missing") {
		t.Fatalf("expected no removal for unknown id")
	}
	if len(p.Experience) != 3 {
		t.Fatalf("sequence modified on miss: %v", p.Experience)
	}
}

func TestProfile_RemoveEducation(t *testing.T) {
	var p Profile
	p.AddEducation(Education{ID: "x"})
	p.AddEducation(Education{ID: "y"})

	if !p.RemoveEducation("y") {
		t.Fatalf("expected removal")
	}
	if len(p.Education) != 1 || p.Education[0].ID != "x" {
		t.Fatalf("unexpected education: %+v", p.Education)
	}
}

func TestProfile_ApplySparse(t *testing.T) {
	p := Profile{
		Company: "Acme",
		Status:  "dev",
		Skills:  []string{"go"},
		Social:  Social{Twitter: "@old", YouTube: "yt"},
	}

	p.Apply(Fields{
		Bio:    strp("hello"),
		Social: SocialFields{Twitter: strp("@new")},
	})

	if p.Company != "Acme" || p.Status != "dev" || p.Bio != "hello" {
		t.Fatalf("unexpected scalar fields: %+v", p)
	}
	if !reflect.DeepEqual(p.Skills, []string{"go"}) {
		t.Fatalf("skills overwritten: %v", p.Skills)
	}
	if p.Social.Twitter != "@new" || p.Social.YouTube != "yt" {
		t.Fatalf("social not merged: %+v", p.Social)
	}
}

func TestSocialFields_Map(t *testing.T) {
	m := SocialFields{LinkedIn: strp("in/ada")}.Map()
	if len(m) != 1 || m["linkedin"] != "in/ada" {
		t.Fatalf("unexpected map %v", m)
	}
}

func TestDate_JSON(t *testing.T) {
	var e Experience
	if err := json.Unmarshal([]byte(`{"id":"1","from":"2020-03-01","to":"2021-01-02T00:00:00Z"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !e.From.Equal(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", e.From)
	}
	if e.To == nil || e.To.Year() != 2021 {
		t.Fatalf("unexpected to %v", e.To)
	}

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Experience
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal back: %v", err)
	}
	if !back.From.Equal(e.From.Time) {
		t.Fatalf("from changed: %v vs %v", back.From, e.From)
	}

	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatalf("expected parse error")
	}
}
