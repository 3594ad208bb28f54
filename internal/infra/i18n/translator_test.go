package i18n

import "testing"

func TestTranslator(t *testing.T) {
	tr, err := NewTranslator(LocalesFS, "id")
	if err != nil {
		t.Fatalf("expected embedded catalog to load, got: %v", err)
	}

	if got := tr.T("topup.paid.title"); got != "Pembayaran berhasil!" {
		t.Errorf("unexpected translation: %q", got)
	}
	// Unknown keys come back verbatim.
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Errorf("expected key passthrough, got %q", got)
	}
}

func TestTranslatorMissingLocale(t *testing.T) {
	if _, err := NewTranslator(LocalesFS, "xx"); err == nil {
		t.Fatal("expected an error for a missing locale")
	}
}
