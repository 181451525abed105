package ansiblocks

// Block is one emitted unit of output: a run of plain text, the rendition
// state active when it was produced, and the hyperlink target when the text
// came from an OSC 8 link. The Style is a value copy; mutating the session
// afterwards does not affect delivered blocks.
type Block struct {
	Value string `json:"value"`
	Style Style  `json:"style"`
	URL   string `json:"url,omitempty"`
}

// BlockHandler receives blocks as they are emitted.
type BlockHandler interface {
	// HandleBlock is called once per block, in stream order.
	HandleBlock(block Block)
}

// BlockFunc adapts a plain function to a BlockHandler.
type BlockFunc func(Block)

func (f BlockFunc) HandleBlock(block Block) {
	f(block)
}

// NoopBlocks discards all blocks (useful when only the side effects of
// parsing matter, e.g. draining a stream).
type NoopBlocks struct{}

func (NoopBlocks) HandleBlock(block Block) {}

var _ BlockHandler = BlockFunc(nil)
var _ BlockHandler = NoopBlocks{}

// Middleware intercepts block delivery, allowing custom behavior before or
// after a block reaches the caller. Block receives the emitted block and a
// next function that performs the default delivery.
type Middleware struct {
	// Block wraps the delivery of one block
	Block func(block Block, next func(Block))
}

// Merge copies non-nil middleware functions from other into this, overwriting existing values.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}

	if other.Block != nil {
		m.Block = other.Block
	}
}
