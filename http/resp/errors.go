package resp

var (
	_ Errors = Messages(nil)
	_ Errors = (*Bag)(nil)
)

// The Errors interface describes an ordered collection of error messages
// an Envelope includes in its compiled payload.
//
// Messages adapts a plain sequence; a *Bag keys messages by field.
type Errors interface {
	// All lists every message in the collection, in order.
	All() []string

	// First returns the foremost message, or "" when the collection is empty.
	First() string
}

// Messages is a plain ordered sequence of error messages.
type Messages []string

// All lists every message in the sequence.
func (m Messages) All() []string { return m }

// First returns the first message in the sequence, or "" when there is none.
func (m Messages) First() string {
	if len(m) == 0 {
		return ""
	}

	return m[0]
}

// A Bag collects error messages keyed by the field that produced them,
// the shape validation reports take.
//
// A Bag preserves insertion order: All lists fields in the order
// they were first added to, and each field's messages in the order
// they were added.
//
// The zero value is ready to use.
type Bag struct {
	order []string
	msgs  map[string][]string
}

// NewBag constructs an empty *Bag.
func NewBag() *Bag {
	return &Bag{msgs: make(map[string][]string)}
}

// Add records msg against field.
func (b *Bag) Add(field, msg string) {
	if b.msgs == nil {
		b.msgs = make(map[string][]string)
	}

	if _, ok := b.msgs[field]; !ok {
		b.order = append(b.order, field)
	}

	b.msgs[field] = append(b.msgs[field], msg)
}

// All lists every message in the Bag, in insertion order.
func (b *Bag) All() []string {
	all := make([]string, 0, b.Len())
	for _, field := range b.order {
		all = append(all, b.msgs[field]...)
	}

	return all
}

// Field lists the messages recorded against field, in insertion order.
func (b *Bag) Field(field string) []string { return b.msgs[field] }

// Fields returns the full field-to-messages mapping.
func (b *Bag) Fields() map[string][]string {
	fields := make(map[string][]string, len(b.msgs))
	for field, msgs := range b.msgs {
		fields[field] = msgs
	}

	return fields
}

// First returns the first message recorded in the Bag,
// or "" when the Bag is empty.
func (b *Bag) First() string {
	if len(b.order) == 0 {
		return ""
	}

	return b.msgs[b.order[0]][0]
}

// Get returns the first message recorded against field,
// or "" when field has none.
func (b *Bag) Get(field string) string {
	msgs := b.msgs[field]
	if len(msgs) == 0 {
		return ""
	}

	return msgs[0]
}

// Has reports whether any messages are recorded against field.
func (b *Bag) Has(field string) bool {
	return len(b.msgs[field]) > 0
}

// Len counts every message in the Bag.
func (b *Bag) Len() int {
	var n int
	for _, msgs := range b.msgs {
		n += len(msgs)
	}

	return n
}
