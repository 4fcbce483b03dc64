package runloop

// Conversation is the ordered, append-only message ledger for one run.
// Insertion order is significant: it is the literal context given to the
// model. A Conversation is owned by a single in-flight run and is never
// mutated by two concurrent operations.
type Conversation struct {
	messages []Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// NewConversationFrom creates a conversation seeded with the given messages.
// Each message is validated; the first invalid message aborts construction.
func NewConversationFrom(messages []Message) (*Conversation, error) {
	c := NewConversation()
	for _, m := range messages {
		if err := c.Append(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Append adds a message to the end of the ledger. It returns a
// *ValidationError if the message violates its variant invariants; it never
// coerces an invalid message into a valid one.
func (c *Conversation) Append(m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.messages = append(c.messages, m)
	return nil
}

// MustAppend is like Append but panics on error. Intended for messages built
// with the package constructors, which cannot fail validation.
func (c *Conversation) MustAppend(m Message) {
	if err := c.Append(m); err != nil {
		panic(err)
	}
}

// Fork returns an independent copy. Further mutation of the copy does not
// affect the original, so a caller-owned template survives a run unchanged.
func (c *Conversation) Fork() *Conversation {
	forked := make([]Message, len(c.messages))
	copy(forked, c.messages)
	return &Conversation{messages: forked}
}

// Messages returns a copy of the ledger in insertion order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the ledger.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Wire projects the ledger into provider wire items. The projection is pure
// and order-preserving; it has no side effects on the conversation.
func (c *Conversation) Wire() []WireItem {
	items := make([]WireItem, len(c.messages))
	for i, m := range c.messages {
		items[i] = wireItem(m)
	}
	return items
}
