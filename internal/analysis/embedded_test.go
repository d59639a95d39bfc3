package analysis

import "testing"

func TestCompileEmbedded(t *testing.T) {
	t.Run("plain names compile to nil", func(t *testing.T) {
		p, err := compileEmbedded("Open Session")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != nil {
			t.Errorf("expected nil pattern for a plain name, got %v", p.argNames)
		}
	})

	t.Run("default placeholder matches anything", func(t *testing.T) {
		p, err := compileEmbedded("add ${item} to cart")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Matches("add milk to cart") {
			t.Error("expected a match")
		}
		if !p.Matches("Add MILK To Cart") {
			t.Error("matching should ignore case")
		}
		if p.Matches("remove milk from cart") {
			t.Error("expected no match for a different shape")
		}
		if len(p.argNames) != 1 || p.argNames[0] != "item" {
			t.Errorf("unexpected arg names %v", p.argNames)
		}
	})

	t.Run("custom constraint", func(t *testing.T) {
		p, err := compileEmbedded(`add ${count:\d+} copies of ${item} to cart`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Matches("add 3 copies of bread to cart") {
			t.Error("expected a match for a numeric count")
		}
		if p.Matches("add three copies of bread to cart") {
			t.Error("expected the constraint to reject a word count")
		}
		if !p.NearMatches("add three copies of bread to cart") {
			t.Error("expected a near match when only the constraint fails")
		}
		if p.NearMatches("add 3 copies of bread to cart") {
			t.Error("a full match must not also be a near match")
		}
		if len(p.argNames) != 2 || p.argNames[0] != "count" || p.argNames[1] != "item" {
			t.Errorf("unexpected arg names %v", p.argNames)
		}
	})

	t.Run("invalid constraint reports the keyword", func(t *testing.T) {
		_, err := compileEmbedded(`pick ${n:[} items`)
		if err == nil {
			t.Fatal("expected an error for an invalid pattern")
		}
	})

	t.Run("anchoring", func(t *testing.T) {
		p, err := compileEmbedded("add ${item} to cart")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Matches("please add milk to cart now") {
			t.Error("pattern must be anchored to the whole call")
		}
	})
}
