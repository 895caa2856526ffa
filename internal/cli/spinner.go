package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// startSpinner shows progress on w while a remote call runs. Only terminals get
// a spinner; the returned stop func is always safe to call.
func startSpinner(w io.Writer, msg string) func() {
	f, ok := w.(*os.File)
	if !ok {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriterFile(f),
		spinner.WithSuffix(" "+msg+"..."),
		spinner.WithHiddenCursor(true),
	)
	s.Start()
	return s.Stop
}
