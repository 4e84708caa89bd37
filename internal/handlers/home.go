package handlers

// SEOData is a lightweight copy to avoid importing the seo package here.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          struct {
		Title       string
		Description string
		Image       string
		Type        string
		URL         string
		SiteName    string
	}
	Twitter struct {
		Card  string
		Image string
	}
	JSONLD []string
}

// HomeData is the payload of the landing page.
type HomeData struct {
	Headline string
	Tagline  string
	Featured any
}

// BuildHomeData constructs the default copy of the landing page.
func BuildHomeData(siteName string) HomeData {
	return HomeData{
		Headline: siteName,
		Tagline:  "Wound care, surgical consumables and hospital equipment for clinics and hospitals across Karnataka.",
	}
}
