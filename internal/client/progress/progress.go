// Package progress carries upload progress from the transport to whoever is
// watching it.
//
// The transport reports raw percentages through a Reporter, usually from a
// goroutine owned by net/http. A Gate sits between the transport and the
// workflow: it serializes reports, clamps them to [0,100], never lets a value
// go backwards, and can be sealed so nothing arrives after an attempt is over.
// A Feed fans the accepted values out to any number of subscribers, each of
// which can cancel independently.
package progress

import (
	"io"
	"math"
	"sync"
)

// Reporter receives progress as an integer percentage.
type Reporter interface {
	Report(percent int)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(percent int)

func (f ReporterFunc) Report(percent int) { f(percent) }

// Discard ignores every report.
var Discard Reporter = ReporterFunc(func(int) {})

// Percent returns round(done*100/total) clamped to [0,100]. An empty total
// counts as complete.
func Percent(done, total int64) int {
	if total <= 0 {
		return 100
	}
	p := int(math.Round(float64(done) * 100 / float64(total)))
	return clamp(p)
}

func clamp(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Gate forwards monotonic, clamped percentages to next until sealed.
type Gate struct {
	mu      sync.Mutex
	next    Reporter
	last    int
	started bool
	sealed  bool
}

func NewGate(next Reporter) *Gate {
	if next == nil {
		next = Discard
	}
	return &Gate{next: next}
}

// Report forwards p if it moves progress forward. Backward values are held
// at the previous maximum and repeats are dropped.
func (g *Gate) Report(p int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sealed {
		return
	}

	p = clamp(p)
	if g.started && p <= g.last {
		return
	}
	g.started = true
	g.last = p
	g.next.Report(p)
}

// Last returns the highest value forwarded so far.
func (g *Gate) Last() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// Seal stops forwarding. It waits for a report that is being delivered, so
// once Seal returns nothing else reaches next.
func (g *Gate) Seal() {
	g.mu.Lock()
	g.sealed = true
	g.mu.Unlock()
}

// Feed broadcasts percentages to subscribers. Each subscriber sees the latest
// value; a slow reader may skip intermediate ones but never sees them out of
// order.
type Feed struct {
	mu     sync.Mutex
	subs   map[uint64]chan int
	nextID uint64
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[uint64]chan int)}
}

// Subscribe returns a channel of updates and a cancel func that closes it.
// Cancel is safe to call more than once.
func (f *Feed) Subscribe() (<-chan int, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan int, 1)
	f.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Report publishes p, replacing an unread older value.
func (f *Feed) Report(p int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- p:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- p
		}
	}
}

// Reader counts bytes read from r and reports them as a share of total.
type Reader struct {
	r     io.Reader
	total int64
	done  int64
	rep   Reporter
}

func NewReader(r io.Reader, total int64, rep Reporter) *Reader {
	if rep == nil {
		rep = Discard
	}
	return &Reader{r: r, total: total, rep: rep}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.done += int64(n)
		r.rep.Report(Percent(r.done, r.total))
	}
	return n, err
}
