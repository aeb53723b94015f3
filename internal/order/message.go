package order

// Tag routes an outbound system message: it tells the NLU collaborator how
// to interpret the customer's next utterance.
type Tag string

const (
	TagGeneral        Tag = "general"
	TagClarify        Tag = "clarify"
	TagDessertOffered Tag = "dessert_offered"
	TagFinished       Tag = "finished"
)

// Message is an outbound system prompt with its routing tag.
type Message struct {
	Text string `json:"text"`
	Tag  Tag    `json:"tag"`
}
