package content

import "testing"

func TestPlainText(t *testing.T) {
	md := "# Alan Zhou\n" +
		"\n" +
		"I work on *dynamical systems* and\n" +
		"[visualisation](https://example.org) at `lab`.\n" +
		"\n" +
		"- first item\n" +
		"* second **bold** item\n"

	want := "Alan Zhou\n\n" +
		"I work on dynamical systems and visualisation at lab.\n\n" +
		"• first item\n\n" +
		"• second bold item"

	if got := PlainText(md); got != want {
		t.Errorf("unexpected plain text:\n%q\nwant:\n%q", got, want)
	}
}

func TestPlainTextEmpty(t *testing.T) {
	if got := PlainText("\n\n  \n"); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
