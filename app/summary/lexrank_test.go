package summary

import (
	"math"
	"testing"
)

func TestLexRankConnectedSentencesWin(t *testing.T) {
	sentences := [][]string{
		{"markets", "stocks", "rally"},
		{"markets", "stocks", "fell"},
		{"garden", "flowers"},
	}

	ranks, err := LexRank{}.Rank(sentences)
	if err != nil {
		t.Fatalf("expected ranking to succeed, got error: %v", err)
	}
	if len(ranks) != 3 {
		t.Fatalf("expected 3 ranks, got %d", len(ranks))
	}

	if ranks[0] <= ranks[2] || ranks[1] <= ranks[2] {
		t.Errorf("expected connected sentences to out-rank the isolated one, got %v", ranks)
	}
	if math.Abs(ranks[0]-ranks[1]) > 1e-9 {
		t.Errorf("expected symmetric sentences to rank equally, got %f and %f", ranks[0], ranks[1])
	}
}

func TestLexRankNoEdges(t *testing.T) {
	sentences := [][]string{
		{"apples", "oranges"},
		{"engines", "pistons"},
	}
	if _, err := (LexRank{}).Rank(sentences); err == nil {
		t.Error("expected an error when no pair clears the similarity threshold")
	}
}

func TestLexRankTooFewSentences(t *testing.T) {
	if _, err := (LexRank{}).Rank([][]string{{"alone"}}); err == nil {
		t.Error("expected an error for a single sentence")
	}
}

func TestCosineSortedVectors(t *testing.T) {
	a := []termWeight{{"bill", 1}, {"senate", 1}}
	b := []termWeight{{"bill", 1}, {"vote", 1}}

	got := cosine(a, b)
	expected := 0.5
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected cosine %f, got %f", expected, got)
	}

	if cosine(a, []termWeight{{"zebra", 1}}) != 0 {
		t.Error("expected zero cosine for disjoint vectors")
	}
}
