package browser

import "testing"

func TestOpenURLEmpty(t *testing.T) {
	if err := OpenURL(""); err == nil {
		t.Error("empty URL should be rejected")
	}
}
