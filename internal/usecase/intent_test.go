package usecase

import (
	"testing"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

func TestClassify(t *testing.T) {
	classifier := NewIntentClassifier(false)

	tests := []struct {
		name string
		text string
		want domain.IntentLabel
	}{
		{
			name: "diy kit listing question",
			text: "What DIY kits do you have?",
			want: domain.IntentDIYKit,
		},
		{
			name: "price question",
			text: "How much does it cost?",
			want: domain.IntentPrice,
		},
		{
			name: "franchise interest",
			text: "I want to start a franchise",
			want: domain.IntentFranchise,
		},
		{
			name: "broom browse with typo keyword",
			text: "do you sell brrom",
			want: domain.IntentBroom,
		},
		{
			name: "exact greeting token",
			text: "hello",
			want: domain.IntentGreeting,
		},
		{
			name: "no keyword overlap defaults to general",
			text: "xyzzy qwerty",
			want: domain.IntentGeneral,
		},
		{
			name: "empty input",
			text: "",
			want: domain.IntentGeneral,
		},
		{
			name: "non-ascii input does not panic",
			text: "வணக்கம் நண்பரே",
			want: domain.IntentGeneral,
		},
		{
			name: "fabric conditioner kit classifies as diy kit",
			text: "fabric conditioner kit",
			want: domain.IntentDIYKit,
		},
		{
			name: "working hours question",
			text: "what are your working hours",
			want: domain.IntentWorkingHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text)
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	classifier := NewIntentClassifier(false)
	inputs := []string{
		"how much does the dish wash kit cost",
		"hello there",
		"",
		"broom broom broom",
	}

	for _, input := range inputs {
		first := classifier.Classify(input)
		for i := 0; i < 5; i++ {
			if got := classifier.Classify(input); got != first {
				t.Fatalf("Classify(%q) unstable: got %s then %s", input, first, got)
			}
		}
	}
}

func TestClassify_AlwaysReturnsTaxonomyLabel(t *testing.T) {
	classifier := NewIntentClassifier(false)
	valid := make(map[domain.IntentLabel]bool, len(taxonomy))
	for _, entry := range taxonomy {
		valid[entry.label] = true
	}

	inputs := []string{
		"price kit franchise broom mop",
		"completely unrelated text",
		"   ",
		"HELLO HOW MUCH",
	}
	for _, input := range inputs {
		got := classifier.Classify(input)
		if !valid[got] {
			t.Errorf("Classify(%q) = %q, not in taxonomy", input, got)
		}
	}
}

func TestClassify_TieBreaksByDeclarationOrder(t *testing.T) {
	classifier := NewIntentClassifier(false)

	// "training" appears in both technical_support and faq_training with
	// identical scores, so the earlier declaration must win.
	got := classifier.Classify("training")
	if got != domain.IntentTechnicalHelp {
		t.Errorf("Classify(%q) = %s, want %s (declaration-order tie-break)",
			"training", got, domain.IntentTechnicalHelp)
	}
}

func TestClassify_ListingBoost(t *testing.T) {
	classifier := NewIntentClassifier(false)

	// Listing phrasing should not invent intents with zero keyword score
	if got := classifier.Classify("show me everything unrelated"); got != domain.IntentGeneral {
		t.Errorf("listing boost applied to zero-score intent: got %s", got)
	}

	// But it keeps category-browse queries on the category intent
	if got := classifier.Classify("show me what brooms are available"); got != domain.IntentBroom {
		t.Errorf("Classify(broom listing) = %s, want %s", got, domain.IntentBroom)
	}
}
