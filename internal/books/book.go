package books

const (
	UnknownTitle     = "Unknown Title"
	UnknownAuthor    = "Unknown Author"
	UnknownPublisher = "Unknown Publisher"
	NoDescription    = "No description available"
)

// Book is the normalized projection of a Google Books volume.
// Optional scalars stay nil when the upstream omits them and encode as null.
type Book struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Authors       []string          `json:"authors"`
	Publisher     string            `json:"publisher"`
	PublishedDate *string           `json:"publishedDate"`
	Description   string            `json:"description"`
	PageCount     *int              `json:"pageCount"`
	Categories    []string          `json:"categories"`
	AverageRating *float64          `json:"averageRating"`
	RatingsCount  *int              `json:"ratingsCount"`
	ImageLinks    map[string]string `json:"imageLinks"`
	PreviewLink   *string           `json:"previewLink"`
	InfoLink      *string           `json:"infoLink"`
}

// Volumes is one page of search results.
type Volumes struct {
	Books      []Book
	TotalItems int
}

type volumesResponse struct {
	Kind       string   `json:"kind"`
	TotalItems *int     `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         *string           `json:"title"`
	Authors       []string          `json:"authors"`
	Publisher     *string           `json:"publisher"`
	PublishedDate *string           `json:"publishedDate"`
	Description   *string           `json:"description"`
	PageCount     *int              `json:"pageCount"`
	Categories    []string          `json:"categories"`
	AverageRating *float64          `json:"averageRating"`
	RatingsCount  *int              `json:"ratingsCount"`
	ImageLinks    map[string]string `json:"imageLinks"`
	PreviewLink   *string           `json:"previewLink"`
	InfoLink      *string           `json:"infoLink"`
}

func (r volumesResponse) toVolumes() *Volumes {
	out := &Volumes{Books: make([]Book, 0, len(r.Items))}
	if r.TotalItems != nil {
		out.TotalItems = *r.TotalItems
	}
	for _, item := range r.Items {
		out.Books = append(out.Books, item.toBook())
	}
	return out
}

func (v volume) toBook() Book {
	info := v.VolumeInfo
	b := Book{
		ID:            v.ID,
		Title:         stringOr(info.Title, UnknownTitle),
		Authors:       info.Authors,
		Publisher:     stringOr(info.Publisher, UnknownPublisher),
		PublishedDate: info.PublishedDate,
		Description:   stringOr(info.Description, NoDescription),
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
		ImageLinks:    info.ImageLinks,
		PreviewLink:   info.PreviewLink,
		InfoLink:      info.InfoLink,
	}
	if b.Authors == nil {
		b.Authors = []string{UnknownAuthor}
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	if b.ImageLinks == nil {
		b.ImageLinks = map[string]string{}
	}
	return b
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
