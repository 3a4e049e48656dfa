package composer

import "testing"

func TestInsertAndQuery(t *testing.T) {
	c := New()
	c.InsertCharacterPreedit("k")
	c.InsertCharacterPreedit("a")
	c.InsertCharacterPreedit("n")
	c.InsertCharacterPreedit("j")
	c.InsertCharacterPreedit("i")

	want := "かんじ"
	if got := c.GetQueryForConversion(); got != want {
		t.Fatalf("GetQueryForConversion() = %q, want %q", got, want)
	}
	if got := c.GetQueryForPrediction(); got != want {
		t.Fatalf("GetQueryForPrediction() = %q, want %q", got, want)
	}
	if got := c.GetStringForSubmission(); got != want {
		t.Fatalf("GetStringForSubmission() = %q, want %q", got, want)
	}
}

func TestLongestMatchPreferred(t *testing.T) {
	c := New()
	c.InsertCharacterPreedit("kyo")
	if got := c.GetQueryForConversion(); got != "きょ" {
		t.Fatalf("GetQueryForConversion() = %q, want きょ (longest romaji match)", got)
	}
}

func TestUnmatchedRunesPassThrough(t *testing.T) {
	c := New()
	c.InsertCharacterPreedit("1")
	c.InsertCharacterPreedit("2")
	if got := c.GetQueryForConversion(); got != "12" {
		t.Fatalf("GetQueryForConversion() = %q, want 12 passed through", got)
	}
}

func TestGetLength(t *testing.T) {
	c := New()
	c.InsertCharacterPreedit("ka")
	c.InsertCharacterPreedit("n")
	if got := c.GetLength(); got != 2 {
		t.Fatalf("GetLength() = %d, want 2 (か, ん)", got)
	}
}

func TestDeleteAt(t *testing.T) {
	c := New()
	c.InsertCharacterPreedit("1")
	c.InsertCharacterPreedit("2")
	c.InsertCharacterPreedit("3")
	c.DeleteAt(1)
	if got := c.GetQueryForConversion(); got != "13" {
		t.Fatalf("after DeleteAt(1), query = %q, want 13", got)
	}
}

func TestDeleteAtOutOfRangeIsNoOp(t *testing.T) {
	c := New()
	c.InsertCharacterPreedit("1")
	c.DeleteAt(5)
	c.DeleteAt(-1)
	if got := c.GetQueryForConversion(); got != "1" {
		t.Fatalf("out-of-range DeleteAt mutated the buffer: got %q, want 1", got)
	}
}

func TestResetAndEmpty(t *testing.T) {
	c := New()
	if !c.Empty() {
		t.Fatal("a fresh Composer should be Empty()")
	}
	c.InsertCharacterPreedit("a")
	if c.Empty() {
		t.Fatal("Composer with a keystroke should not be Empty()")
	}
	c.SetSourceText("元")
	c.Reset()
	if !c.Empty() {
		t.Fatal("Reset() should clear the buffer")
	}
	if c.SourceText() != "" {
		t.Fatalf("Reset() left SourceText() = %q, want empty", c.SourceText())
	}
}

func TestSourceText(t *testing.T) {
	c := New()
	c.SetSourceText("漢字")
	if got := c.SourceText(); got != "漢字" {
		t.Fatalf("SourceText() = %q, want 漢字", got)
	}
}
