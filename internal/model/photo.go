package model

import "strings"

// PhotoURLs holds the size variants published for a photo.
type PhotoURLs struct {
	Raw     string `json:"raw,omitempty"`
	Full    string `json:"full,omitempty"`
	Regular string `json:"regular,omitempty"`
	Small   string `json:"small,omitempty"`
	Thumb   string `json:"thumb,omitempty"`
}

// Author is the photographer credited for a photo.
type Author struct {
	Name         string `json:"name,omitempty"`
	Username     string `json:"username,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"` // small profile thumbnail URL
}

// Photo is one immutable photo record as returned by the API.
type Photo struct {
	ID          string    `json:"id,omitempty"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Color       string    `json:"color,omitempty"` // hex placeholder colour, e.g. "#0c2626"
	URLs        PhotoURLs `json:"urls"`
	Author      *Author   `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
}

// AspectRatio returns height/width. The second value is false when the
// width is not positive and the ratio is undefined.
func (p Photo) AspectRatio() (float64, bool) {
	if p.Width <= 0 {
		return 0, false
	}
	return float64(p.Height) / float64(p.Width), true
}

// HasAuthor reports whether the photo carries a non-blank author name.
func (p Photo) HasAuthor() bool {
	return p.Author != nil && strings.TrimSpace(p.Author.Name) != ""
}

// AuthorName returns the author's display name or an empty string.
func (p Photo) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Name
}

// AuthorImage returns the author's profile thumbnail URL or an empty string.
func (p Photo) AuthorImage() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.ProfileImage
}

// HasDescription reports whether the description is present and not blank.
func (p Photo) HasDescription() bool {
	return strings.TrimSpace(p.Description) != ""
}
