package blog

// HeroImage is the optional header image for a post.
type HeroImage struct {
	URL string `json:"url" bson:"url"`
	Alt string `json:"alt" bson:"alt"`
}

// Post is a journal entry. Posts are seeded out of band; this API only
// reads them.
type Post struct {
	ID        string     `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title"`
	Summary   string     `json:"summary" bson:"summary"`
	Body      string     `json:"body" bson:"body"`
	Tags      []string   `json:"tags" bson:"tags"`
	CreatedAt string     `json:"createdAt" bson:"createdAt"` // ISO date or date-time; listing sort key
	HeroImage *HeroImage `json:"heroImage,omitempty" bson:"heroImage,omitempty"`
}

// Card is the listing projection: everything the journal landing page needs,
// without the post body.
type Card struct {
	ID        string     `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title"`
	Summary   string     `json:"summary" bson:"summary"`
	Tags      []string   `json:"tags" bson:"tags"`
	CreatedAt string     `json:"createdAt" bson:"createdAt"`
	HeroImage *HeroImage `json:"heroImage,omitempty" bson:"heroImage,omitempty"`
}
