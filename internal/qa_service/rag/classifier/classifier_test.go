package classifier

import (
	"testing"

	"AdmissionOfficer/internal/models"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name     string
		question string
		want     models.Category
		detected bool
	}{
		{"admissions", "How do I apply for admission?", models.CategoryAdmissions, true},
		{"fees", "What is the tuition fee per credit hour?", models.CategoryFees, true},
		{"academics", "What GPA do I need to stay off probation?", models.CategoryAcademics, true},
		{"advising", "Can my advisor help me register for a summer course?", models.CategoryAcademicAdvising, true},
		{"it systems", "I cannot login to the student portal", models.CategoryITSystems, true},
		{"emails", "My university email does not receive mail in the inbox", models.CategoryEmails, true},
		{"case insensitive", "HOW DO I APPLY?", models.CategoryAdmissions, true},
		{"no match", "Tell me about the weather", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, detected := Detect(tc.question)
			if detected != tc.detected {
				t.Fatalf("Detect(%q) detected = %v, want %v", tc.question, detected, tc.detected)
			}
			if got != tc.want {
				t.Errorf("Detect(%q) = %q, want %q", tc.question, got, tc.want)
			}
		})
	}
}

func TestDetectHighestCountWins(t *testing.T) {
	// Two fee keywords against one admissions keyword.
	got, detected := Detect("What is the payment deadline for the tuition?")
	if !detected {
		t.Fatal("expected a detected category")
	}
	if got != models.CategoryFees {
		t.Errorf("got %q, want %q", got, models.CategoryFees)
	}
}

func TestDetectTieKeepsDeclarationOrder(t *testing.T) {
	// One admissions keyword and one fees keyword: the earlier-declared
	// category must win the tie.
	got, detected := Detect("Can I apply for a refund?")
	if !detected {
		t.Fatal("expected a detected category")
	}
	if got != models.CategoryAdmissions {
		t.Errorf("got %q, want %q", got, models.CategoryAdmissions)
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	const question = "How do I pay the application fee through the portal?"
	first, _ := Detect(question)
	for i := 0; i < 100; i++ {
		got, _ := Detect(question)
		if got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}
