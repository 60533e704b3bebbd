package render

import (
	"sync"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
)

// Recorder is an in-memory Target. It keeps the latest state of every
// element and counts focus requests.
type Recorder struct {
	mu sync.Mutex

	cards        []Card
	empty        bool
	options      []domain.Option
	loading      bool
	search       string
	focusCount   int
	renderCount  int
	loadingCalls []bool
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Cards(cards []Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = cards
	r.renderCount++
}

func (r *Recorder) Empty(show bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.empty = show
}

func (r *Recorder) CategoryOptions(options []domain.Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options = options
}

func (r *Recorder) Loading(show bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = show
	r.loadingCalls = append(r.loadingCalls, show)
}

func (r *Recorder) FocusSearch() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focusCount++
}

func (r *Recorder) SearchValue(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.search = value
}

// Snapshot is a copy of the recorded state.
type Snapshot struct {
	Cards        []Card
	Empty        bool
	Options      []domain.Option
	Loading      bool
	Search       string
	FocusCount   int
	RenderCount  int
	LoadingCalls []bool
}

// Snapshot returns the current state
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		Cards:        append([]Card(nil), r.cards...),
		Empty:        r.empty,
		Options:      append([]domain.Option(nil), r.options...),
		Loading:      r.loading,
		Search:       r.search,
		FocusCount:   r.focusCount,
		RenderCount:  r.renderCount,
		LoadingCalls: append([]bool(nil), r.loadingCalls...),
	}
}
