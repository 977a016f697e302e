package storyboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Generator is the image dispatch the board drives. Implementations are
// expected to read the credential fresh on every call.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Item is one extracted topic and the state of its image generation.
// A completed attempt holds either an image URL or an error message,
// never both.
type Item struct {
	ID       string
	Title    string
	Prompt   string
	ImageURL string
	Loading  bool
	Err      string
}

// Board holds the topic items for one script, addressed by stable
// identifier. Transitions replace the whole item record under the lock
// so readers always see a consistent snapshot.
type Board struct {
	mu    sync.RWMutex
	items []Item
	gen   Generator
}

// NewBoard extracts topics from script and builds one item per topic,
// with the prompt seeded from the title.
func NewBoard(script string, gen Generator) *Board {
	topics := ExtractTopics(script)
	items := make([]Item, 0, len(topics))
	for _, title := range topics {
		items = append(items, Item{
			ID:     uuid.NewString(),
			Title:  title,
			Prompt: title,
		})
	}
	return &Board{items: items, gen: gen}
}

// Items returns a snapshot of all items in extraction order.
func (b *Board) Items() []Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Item returns a snapshot of one item.
func (b *Board) Item(id string) (Item, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, item := range b.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// SetPrompt replaces the editable prompt of one item.
func (b *Board) SetPrompt(id, prompt string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, item := range b.items {
		if item.ID == id {
			item.Prompt = prompt
			b.items[i] = item
			return true
		}
	}
	return false
}

// GenerateOne dispatches the item's current prompt to the image
// provider. The loading flag is set for the duration of the call and a
// failure is captured into the item's error field rather than returned;
// re-triggering a failed item is allowed and clears its previous error.
func (b *Board) GenerateOne(ctx context.Context, id string) (Item, bool) {
	item, ok := b.replace(id, func(it Item) Item {
		it.Loading = true
		it.Err = ""
		return it
	})
	if !ok {
		return Item{}, false
	}

	url, err := b.gen.GenerateImage(ctx, item.Prompt)

	done, _ := b.replace(id, func(it Item) Item {
		it.Loading = false
		if err != nil {
			it.ImageURL = ""
			it.Err = err.Error()
		} else {
			it.ImageURL = url
			it.Err = ""
		}
		return it
	})
	return done, true
}

// GenerateAll walks the items in extraction order, sequentially, and
// dispatches every item that does not already hold an image URL.
// Repeated invocation is idempotent for satisfied items.
func (b *Board) GenerateAll(ctx context.Context) {
	for _, item := range b.Items() {
		if item.ImageURL != "" {
			continue
		}
		b.GenerateOne(ctx, item.ID)
	}
}

func (b *Board) replace(id string, fn func(Item) Item) (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, item := range b.items {
		if item.ID == id {
			updated := fn(item)
			b.items[i] = updated
			return updated, true
		}
	}
	return Item{}, false
}
