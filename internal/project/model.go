package project

// HeroImage references an externally stored image. URL is either a relative
// local path or an absolute object-storage URL.
type HeroImage struct {
	URL string `json:"url" bson:"url"`
	Alt string `json:"alt" bson:"alt"`
}

// ProgressLogEntry is one dated entry in a project's progress log. Entries are
// append-oriented; dates carry no uniqueness constraint.
type ProgressLogEntry struct {
	Date        string `json:"date" bson:"date"` // ISO date (YYYY-MM-DD)
	Description string `json:"description" bson:"description"`
}

// Link is an external link shown on the project detail page.
type Link struct {
	Title string `json:"title" bson:"title"`
	URL   string `json:"url" bson:"url"`
}

// DetailImage is an optional gallery image for the detail page.
type DetailImage struct {
	URL     string `json:"url" bson:"url"`
	Alt     string `json:"alt" bson:"alt"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
	Type    string `json:"type,omitempty" bson:"type,omitempty"` // screenshot|diagram|other
}

// Project is a portfolio entry. ID doubles as the document identifier and
// partition key and never changes after creation.
type Project struct {
	ID                   string             `json:"id" bson:"id"`
	Title                string             `json:"title" bson:"title"`
	Description          string             `json:"description" bson:"description"`
	HeroImage            HeroImage          `json:"heroImage" bson:"heroImage"`
	DetailedDescription  string             `json:"detailedDescription" bson:"detailedDescription"`
	ProgressLog          []ProgressLogEntry `json:"progressLog" bson:"progressLog"`
	Links                []Link             `json:"links" bson:"links"`
	DetailImages         []DetailImage      `json:"detailImages" bson:"detailImages"`
	FutureConsiderations []string           `json:"futureConsiderations" bson:"futureConsiderations"`
}

// Card is the lightweight projection returned by the list endpoint. Long-form
// fields never appear here.
type Card struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	HeroImage   HeroImage `json:"heroImage" bson:"heroImage"`
}
