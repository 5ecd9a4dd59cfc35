package plants

import "testing"

func fptr(v float64) *float64 { return &v }

func TestFilter_EmptyTermAndCategory_ReturnsInputUnchanged(t *testing.T) {
	in := []Plant{
		{Name: "Aloe Vera"},
		{Name: "Monstera"},
		{Name: "Ficus Lyrata"},
	}

	out := Filter(in, "", "")

	if len(out) != len(in) {
		t.Fatalf("expected %d plants, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Name != in[i].Name {
			t.Fatalf("order changed at %d: want %q got %q", i, in[i].Name, out[i].Name)
		}
	}
}

func TestFilter_SearchTerm_CaseInsensitiveOnName(t *testing.T) {
	in := []Plant{
		{Name: "Aloe Vera"},
		{Name: "Monstera"},
	}

	out := Filter(in, "ALOE", "")

	if len(out) != 1 || out[0].Name != "Aloe Vera" {
		t.Fatalf("expected [Aloe Vera], got %+v", out)
	}
}

func TestFilter_SearchTerm_MatchesAnyConfiguredField(t *testing.T) {
	in := []Plant{
		{Name: "Monstera", Nickname: "Monchi"},
		{Name: "Ficus", PotSize: "XL terracota"},
		{Name: "Aloe", Location: "Kitchen Window"},
		{Name: "Cactus", Height: fptr(12.5)},
		{Name: "Palm"},
	}

	cases := []struct {
		term string
		want string
	}{
		{"monchi", "Monstera"},
		{"terracota", "Ficus"},
		{"kitchen", "Aloe"},
		{"12.5", "Cactus"},
	}

	for _, c := range cases {
		out := Filter(in, c.term, "")
		if len(out) != 1 || out[0].Name != c.want {
			t.Fatalf("term %q: expected [%s], got %+v", c.term, c.want, out)
		}
	}
}

func TestFilter_AbsentFieldsNeverMatchNorError(t *testing.T) {
	// Height nil no debe matchear ni paniquear.
	in := []Plant{{Name: "Palm", Height: nil}}

	out := Filter(in, "12", "")
	if len(out) != 0 {
		t.Fatalf("expected no match, got %+v", out)
	}
}

func TestFilter_Category_ExactCaseSensitive(t *testing.T) {
	in := []Plant{
		{Name: "Aloe", Category: "Succulent"},
		{Name: "Echeveria", Category: "succulent"}, // minúscula: queda afuera
		{Name: "Monstera", Category: "Tropical"},
	}

	out := Filter(in, "", "Succulent")

	if len(out) != 1 || out[0].Name != "Aloe" {
		t.Fatalf("expected [Aloe], got %+v", out)
	}
}

func TestFilter_CombinedPredicate_IsAND(t *testing.T) {
	in := []Plant{
		{Name: "Aloe Vera", Category: "Succulent"},
		{Name: "Aloe Arborescens", Category: "Outdoor"},
		{Name: "Monstera", Category: "Succulent"},
	}

	out := Filter(in, "aloe", "Succulent")

	if len(out) != 1 || out[0].Name != "Aloe Vera" {
		t.Fatalf("expected [Aloe Vera], got %+v", out)
	}
}

func TestFilter_PreservesRelativeOrderAmongMatches(t *testing.T) {
	in := []Plant{
		{Name: "Aloe C"},
		{Name: "Monstera"},
		{Name: "Aloe A"},
		{Name: "Aloe B"},
	}

	out := Filter(in, "aloe", "")

	want := []string{"Aloe C", "Aloe A", "Aloe B"}
	if len(out) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(out))
	}
	for i, w := range want {
		if out[i].Name != w {
			t.Fatalf("order broken at %d: want %q got %q", i, w, out[i].Name)
		}
	}
}
