package models

// ContentDocument is the single editable portfolio document. Sections are
// caller-defined nested JSON; only the presence of the top-level sections
// is enforced, so fields the editor adds later round-trip untouched.
type ContentDocument map[string]any

// RequiredSections are the top-level keys every saved document must carry.
var RequiredSections = []string{
	"hero",
	"about",
	"freelance",
	"projects",
	"skills",
	"experience",
	"hackathons",
	"certs",
	"education",
	"contact",
}

// MissingSections returns the required section keys absent from d.
func (d ContentDocument) MissingSections() []string {
	var missing []string
	for _, key := range RequiredSections {
		if _, ok := d[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
