package images

// Descriptor identifies a stored, normalized preview image.
type Descriptor struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
