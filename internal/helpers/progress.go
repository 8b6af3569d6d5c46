package helpers

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil {
		return 80
	}
	return max(40, min(120, width)-40)
}

// CreateProgressBar draws to stderr when it is a terminal and is silent
// otherwise.
func CreateProgressBar(total int, label string) ProgressBar {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return SilentProgressBar()
	}
	return CreateProgressBarTo(os.Stderr, total, label)
}

func CreateProgressBarTo(w io.Writer, total int, label string) ProgressBar {
	p := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(fmt.Sprintf("%s (%s)", label, humanize.Comma(int64(total)))),
		progressbar.OptionSetWidth(termWidth()),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)

	// the bar is fed from worker goroutines
	lock := sync.Mutex{}
	return ProgressBar{
		func(i int) {
			lock.Lock()
			defer lock.Unlock()
			_ = p.Set(i)
		},
		func(i int) {
			lock.Lock()
			defer lock.Unlock()
			_ = p.Add(i)
		},
		func() {
			lock.Lock()
			defer lock.Unlock()
			_ = p.Finish()
		},
	}
}

func SilentProgressBar() ProgressBar {
	return ProgressBar{
		func(int) {},
		func(int) {},
		func() {},
	}
}
