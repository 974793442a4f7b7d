package models

import "testing"

func TestCombinedText(t *testing.T) {
	r := QARecord{Question: "How do I apply?", Answer: "Online."}
	want := "Question: How do I apply?\nAnswer: Online."
	if got := r.CombinedText(); got != want {
		t.Errorf("CombinedText() = %q, want %q", got, want)
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 7 {
		t.Fatalf("len(Categories()) = %d, want 7", len(cats))
	}
	if cats[0] != CategoryAdmissions || cats[len(cats)-1] != CategoryGeneral {
		t.Errorf("Categories() = %v", cats)
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories() {
		if !IsValidCategory(string(c)) {
			t.Errorf("IsValidCategory(%q) = false, want true", c)
		}
	}
	for _, s := range []string{"", "Cafeteria", "fees"} {
		if IsValidCategory(s) {
			t.Errorf("IsValidCategory(%q) = true, want false", s)
		}
	}
}
