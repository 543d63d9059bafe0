package classify

import "testing"

func TestIsBinaryNulByte(t *testing.T) {
	if !IsBinary([]byte("hello\x00world"), 0) {
		t.Error("a NUL byte must classify content as binary regardless of ratio")
	}
}

func TestIsBinaryControlRatio(t *testing.T) {
	text := []byte("line one\nline two\r\nline three\t indented\f formfeed")
	if IsBinary(text, 0) {
		t.Error("ordinary text with only tab/LF/CR/FF controls should not be binary")
	}

	noisy := make([]byte, 100)
	for i := range noisy {
		noisy[i] = byte(i % 10) // many bytes < 0x20, including NUL (0) and tab (9)
	}
	// Shift off zero bytes (handled by the NUL rule already) by starting at 1.
	for i := range noisy {
		noisy[i] = byte(1 + i%5)
	}
	if !IsBinary(noisy, 0.01) {
		t.Error("content with >1%% disallowed C0 controls should classify binary")
	}
}

func TestIsBinaryHighBytesDoNotCount(t *testing.T) {
	utf8ish := []byte("caf\xc3\xa9 résumé naïve")
	if IsBinary(utf8ish, 0) {
		t.Error("bytes >= 0x80 must not contribute to the control ratio")
	}
}

func TestIsBinaryEmpty(t *testing.T) {
	if IsBinary(nil, 0) {
		t.Error("empty content is not binary")
	}
}

func TestLanguageHint(t *testing.T) {
	cases := map[string]string{
		"main.go":       "go",
		"pkg/utils.py":  "python",
		"README.md":     "markdown",
		"Makefile":      "makefile",
		"Dockerfile":    "dockerfile",
		"unknown.zzzzz": "",
	}
	for path, want := range cases {
		if got := LanguageHint(path); got != want {
			t.Errorf("LanguageHint(%q) = %q, want %q", path, got, want)
		}
	}
}
