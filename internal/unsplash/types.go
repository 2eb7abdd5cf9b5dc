package unsplash

import "github.com/ytget/photo-feed/internal/model"

type unsplashPhoto struct {
	ID          string        `json:"id"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Color       string        `json:"color"`
	Description string        `json:"description"`
	User        *unsplashUser `json:"user"`
	Urls        *unsplashUrls `json:"urls"`
}

type unsplashUser struct {
	ID           string                `json:"id"`
	Username     string                `json:"username"`
	Name         string                `json:"name"`
	ProfileImage *unsplashProfileImage `json:"profile_image"`
}

type unsplashProfileImage struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

type unsplashUrls struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type unsplashSearchResult struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []unsplashPhoto `json:"results"`
}

// toModel converts a wire photo into the domain record
func (p unsplashPhoto) toModel() model.Photo {
	photo := model.Photo{
		ID:          p.ID,
		Width:       p.Width,
		Height:      p.Height,
		Color:       p.Color,
		Description: p.Description,
	}
	if p.Urls != nil {
		photo.URLs = model.PhotoURLs{
			Raw:     p.Urls.Raw,
			Full:    p.Urls.Full,
			Regular: p.Urls.Regular,
			Small:   p.Urls.Small,
			Thumb:   p.Urls.Thumb,
		}
	}
	if p.User != nil {
		author := &model.Author{
			Name:     p.User.Name,
			Username: p.User.Username,
		}
		if p.User.ProfileImage != nil {
			author.ProfileImage = p.User.ProfileImage.Small
		}
		photo.Author = author
	}
	return photo
}

func toModels(in []unsplashPhoto) []model.Photo {
	out := make([]model.Photo, len(in))
	for i, el := range in {
		out[i] = el.toModel()
	}
	return out
}
