package screening

import "strings"

// Film is a catalog entry used for quick-add placement.
type Film struct {
	Title    string `toml:"title" json:"title"`
	Genre    string `toml:"genre" json:"genre,omitempty"`
	Duration int    `toml:"duration" json:"duration"`
}

// Catalog is the ordered list of films offered for quick-add.
type Catalog []Film

// Lookup finds a film by title, ignoring case and surrounding space.
func (c Catalog) Lookup(title string) (Film, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Film{}, false
	}
	for _, f := range c {
		if strings.EqualFold(f.Title, title) {
			return f, true
		}
	}
	return Film{}, false
}

// Titles returns the film titles in catalog order.
func (c Catalog) Titles() []string {
	titles := make([]string, len(c))
	for i, f := range c {
		titles[i] = f.Title
	}
	return titles
}

// DefaultCatalog returns the built-in film list.
func DefaultCatalog() Catalog {
	return Catalog{
		{Title: "Dune: Part Two", Genre: "Sci-Fi", Duration: 166},
		{Title: "Inside Out 2", Genre: "Animatie", Duration: 96},
		{Title: "Bad Boys: Ride or Die", Genre: "Actie/Komedie", Duration: 115},
		{Title: "Deadpool & Wolverine", Genre: "Actie/Komedie", Duration: 127},
		{Title: "Furiosa: A Mad Max Saga", Genre: "Actie/Sci-Fi", Duration: 148},
		{Title: "Despicable Me 4", Genre: "Animatie/Komedie", Duration: 95},
		{Title: "The Super Mario Bros. Movie", Genre: "Animatie", Duration: 92},
		{Title: "Elemental", Genre: "Animatie", Duration: 101},
		{Title: "The Little Mermaid", Genre: "Fantasie", Duration: 135},
		{Title: "Joy Ride", Genre: "Komedie", Duration: 95},
		{Title: "Spider-Man: Across the Spider-Verse", Genre: "Animatie", Duration: 140},
		{Title: "Casper en Emma", Genre: "Kinderfilm", Duration: 75},
		{Title: "Indiana Jones and the Dial of Destiny", Genre: "Actie/Avontuur", Duration: 154},
		{Title: "Insidious: The Red Door", Genre: "Horror", Duration: 107},
		{Title: "Juf Roos", Genre: "Kinderfilm", Duration: 60},
		{Title: "Mission: Impossible - Dead Reckoning Part One", Genre: "Actie", Duration: 163},
		{Title: "Oppenheimer", Genre: "Biografie/Drama", Duration: 180},
		{Title: "Barbie", Genre: "Komedie", Duration: 114},
		{Title: "Gran Turismo", Genre: "Actie/Drama", Duration: 134},
		{Title: "A Haunting in Venice", Genre: "Mysterie/Misdaad", Duration: 103},
		{Title: "The Creator", Genre: "Sci-Fi", Duration: 133},
		{Title: "Taylor Swift: The Eras Tour", Genre: "Concertfilm", Duration: 165},
		{Title: "Five Nights at Freddy's", Genre: "Horror", Duration: 109},
	}
}
