package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits",
			text: "Deep Residual Learning",
			want: []string{"deep", "residual", "learning"},
		},
		{
			name: "or keyword dropped",
			text: "Transformer OR Residual",
			want: []string{"transformer", "residual"},
		},
		{
			name: "stopwords and short tokens dropped",
			text: "a model of the attention mechanism",
			want: []string{"model", "attention", "mechanism"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "punctuation only",
			text: "... !!! ???",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTermFrequencies(t *testing.T) {
	tok := NewTokenizer()

	tf := tok.TermFrequencies("bert compares bert against bert baselines")
	if tf["bert"] != 3 {
		t.Errorf("expected tf[bert]=3, got %d", tf["bert"])
	}
	if tf["baselines"] != 1 {
		t.Errorf("expected tf[baselines]=1, got %d", tf["baselines"])
	}
}
