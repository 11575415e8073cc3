package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Owner struct {
	ID     uuid.UUID
	Name   string
	Avatar string
}

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Experience and Education are stored as JSON documents inside the profile,
// so their tags are the persisted format.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        Date   `json:"from"`
	To          *Date  `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy,omitempty"`
	From         Date   `json:"from"`
	To           *Date  `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

type Profile struct {
	ID             uuid.UUID
	User           Owner
	Company        string
	Location       string
	Website        string
	Bio            string
	Status         string
	Skills         []string
	GitHubUsername string
	Social         Social
	Experience     []Experience
	Education      []Education
	CreatedAt      time.Time
}

// SocialFields holds only the social links supplied in a request.
type SocialFields struct {
	YouTube   *string
	Twitter   *string
	Instagram *string
	LinkedIn  *string
	Facebook  *string
}

// Fields is a sparse profile update: nil means "leave as is".
type Fields struct {
	Company        *string
	Location       *string
	Website        *string
	Bio            *string
	Status         *string
	Skills         []string
	GitHubUsername *string
	Social         SocialFields
}

func (f Fields) HasRequired() bool {
	return f.Status != nil && f.Skills != nil
}

// Map returns the supplied social links keyed by their JSON names.
func (s SocialFields) Map() map[string]string {
	out := map[string]string{}
	set := func(k string, v *string) {
		if v != nil {
			out[k] = *v
		}
	}
	set("youtube", s.YouTube)
	set("twitter", s.Twitter)
	set("instagram", s.Instagram)
	set("linkedin", s.LinkedIn)
	set("facebook", s.Facebook)
	return out
}

// Apply merges f into p. Social links merge key by key.
func (p *Profile) Apply(f Fields) {
	assign := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	assign(&p.Company, f.Company)
	assign(&p.Location, f.Location)
	assign(&p.Website, f.Website)
	assign(&p.Bio, f.Bio)
	assign(&p.Status, f.Status)
	assign(&p.GitHubUsername, f.GitHubUsername)
	if f.Skills != nil {
		p.Skills = append([]string(nil), f.Skills...)
	}

	assign(&p.Social.YouTube, f.Social.YouTube)
	assign(&p.Social.Twitter, f.Social.Twitter)
	assign(&p.Social.Instagram, f.Social.Instagram)
	assign(&p.Social.LinkedIn, f.Social.LinkedIn)
	assign(&p.Social.Facebook, f.Social.Facebook)
}

// AddExperience puts e at the front: the sequence is most-recent-first.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

func (p *Profile) RemoveExperience(id string) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

func (p *Profile) RemoveEducation(id string) bool {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

// ParseSkills splits a comma separated list, trimming each element and
// dropping empty ones.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
