package projections

import (
	"context"
	"fmt"
	"time"

	"octofit/internal/application/fetch"
)

// ListView is the chrome shared by every table view: heading, banner, spinner and footer.
type ListView struct {
	Title    string
	Icon     string
	URL      string
	Loading  bool
	Err      string
	Count    int
	Singular string
	Plural   string
}

// CountLabel renders the footer count: "1 team", "8 teams".
func (v ListView) CountLabel() string {
	return CountLabel(v.Count, v.Singular, v.Plural)
}

// Empty reports whether the placeholder row is shown.
func (v ListView) Empty() bool {
	return v.Count == 0
}

// CountLabel pluralises noun for n.
func CountLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func newListView[T any](title, icon, singular, plural string, s fetch.State[T]) ListView {
	return ListView{
		Title:    title,
		Icon:     icon,
		URL:      s.URL,
		Loading:  s.Loading,
		Err:      s.Err,
		Count:    s.Count(),
		Singular: singular,
		Plural:   plural,
	}
}

// load mounts l for url, waits for the read (bounded by wait when positive),
// snapshots the state and unmounts so a late result cannot touch it.
func load[T any](ctx context.Context, l *fetch.Loader[T], url string, wait time.Duration) fetch.State[T] {
	done := l.Mount(ctx, url)
	defer l.Unmount()

	waitCtx := ctx
	if wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}
	fetch.Await(waitCtx, done)
	return l.State()
}
