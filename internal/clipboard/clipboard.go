// Package clipboard adapts github.com/atotto/clipboard behind a narrow
// Sink interface so the Emitter's output-sink selection doesn't depend
// directly on a third-party package.
package clipboard

import "github.com/atotto/clipboard"

// Sink writes a document body to some external destination.
type Sink interface {
	Write(body string) error
}

// System is a Sink backed by the OS clipboard (pbcopy/xclip/wl-copy/clip.exe,
// chosen automatically by the underlying library).
type System struct{}

func (System) Write(body string) error {
	return clipboard.WriteAll(body)
}
