package domain

// Attachment is the descriptor handed back by the upload collaborator.
// The coordinator relays it verbatim and never touches the stored bytes.
type Attachment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType"`
	URL       string `json:"url"`
}
