package cms

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// Site is the static copy of the development: contact details, marketing
// blocks and the legend of the lot map.
type Site struct {
	Company           string       `yaml:"company"`
	Office            Office       `yaml:"office"`
	Social            []Link       `yaml:"social"`
	Brochure          string       `yaml:"brochure"`
	HeroSlides        []HeroSlide  `yaml:"hero_slides"`
	Financing         Financing    `yaml:"financing"`
	PriceGrid         Heading      `yaml:"price_grid"`
	Stages            []Stage      `yaml:"stages"`
	Disclaimer        string       `yaml:"disclaimer"`
	Legend            []LegendItem `yaml:"legend"`
	ValuePropositions []string     `yaml:"value_propositions"`
	Amenities         []Amenity    `yaml:"amenities"`
}

// Office holds the sales office contact details.
type Office struct {
	Address  string `yaml:"address"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	WhatsApp string `yaml:"whatsapp"`
}

// HeroSlide is one slide of the landing carousel.
type HeroSlide struct {
	Image    string `yaml:"image"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	CTA      Link   `yaml:"cta"`
}

// Heading is a title with a tagline.
type Heading struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
}

// Financing lists the payment plan highlights.
type Financing struct {
	Title      string   `yaml:"title"`
	Highlights []string `yaml:"highlights"`
}

// Stage is one sales stage of the investment overview.
type Stage struct {
	Name     string       `yaml:"name"`
	Tag      string       `yaml:"tag"`
	Date     string       `yaml:"date"`
	Prices   []StagePrice `yaml:"prices"`
	Callout  string       `yaml:"callout"`
	Benefits []string     `yaml:"benefits"`
}

// StagePrice is the price per m² of a classification in a stage.
type StagePrice struct {
	Type  string `yaml:"type"`
	Price string `yaml:"price"`
}

// LegendItem labels a lot status on the map.
type LegendItem struct {
	Label  string `yaml:"label"`
	Status string `yaml:"status"`
}

// Amenity links an amenity page.
type Amenity struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	Image string `yaml:"image"`
}

// DefaultSite returns the built-in copy.
func DefaultSite() Site {
	var s Site
	if err := yaml.Unmarshal(defaultSite, &s); err != nil {
		panic(fmt.Sprintf("cms: embedded site.yaml: %v", err))
	}
	return s
}

// LoadSite reads a site file. Fields missing from the file keep the built-in
// values; a missing file yields the built-in copy.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	path = strings.TrimSpace(path)
	if path == "" {
		return site, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return site, nil
		}
		return site, fmt.Errorf("cms: read site %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &site); err != nil {
		return DefaultSite(), fmt.Errorf("cms: parse site %s: %w", path, err)
	}
	return site, nil
}
