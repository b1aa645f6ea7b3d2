package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim and lowercase", "  KAFD  ", "kafd"},
		{"collapse whitespace", "qasr   al  hokm", "qasr al hokm"},
		{"alef variants fold", "أبراج", "ابراج"},
		{"alef with madda folds", "آفاق", "افاق"},
		{"taa marbuta folds to haa", "محطة", "محطه"},
		{"alef maqsura folds to yaa", "مصلى", "مصلي"},
		{"hamza on waw folds", "مؤتمرات", "موتمرات"},
		{"hamza on yaa folds", "هيئة", "هييه"},
		{"tatweel removed", "مـتـحـف", "متحف"},
		{"punctuation stripped", "king-abdullah (kafd)!", "king abdullah kafd"},
		{"mixed arabic sentence", "  المتحف الوطنيّ ", "المتحف الوطني"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLineByID(t *testing.T) {
	blue := LineByID("Line1")
	if blue.NameEN != "Blue line" || blue.Color != "#0077C8" {
		t.Errorf("Line1 = %+v", blue)
	}

	unknown := LineByID("Line99")
	if unknown.NameEN != "Metro line" {
		t.Errorf("unknown line should get generic label, got %+v", unknown)
	}
	if unknown.ID != "Line99" {
		t.Errorf("unknown line should keep its id, got %q", unknown.ID)
	}
}
