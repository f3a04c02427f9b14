package family

// --- Enums ---

// Sex is the recorded sex of a person. It only affects diagram styling.
type Sex string

const (
	SexUnknown Sex = ""
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
)

// Relation classifies an edge between two people.
type Relation string

const (
	RelationParent Relation = "PARENT_OF" // source is a parent of target
	RelationSpouse Relation = "SPOUSE_OF"
)

// --- Models ---

// Surnames holds every recorded surname form of a person.
type Surnames struct {
	Primary    string   `json:"primary,omitempty" yaml:"primary,omitempty"`
	Maiden     string   `json:"maiden,omitempty" yaml:"maiden,omitempty"`
	Alternates []string `json:"alternates,omitempty" yaml:"alternates,omitempty"`
}

// All returns the primary surname followed by the maiden name and the
// alternates, skipping empty values.
func (s Surnames) All() []string {
	out := make([]string, 0, 2+len(s.Alternates))
	if s.Primary != "" {
		out = append(out, s.Primary)
	}
	if s.Maiden != "" {
		out = append(out, s.Maiden)
	}
	for _, a := range s.Alternates {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Person is a single genealogical record.
//
// The relationship fields are taken as recorded. They are not required to be
// mutually consistent; Graph reconciles both sides when answering queries.
type Person struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	FatherID    string   `json:"fatherId,omitempty" yaml:"fatherId,omitempty"`
	MotherID    string   `json:"motherId,omitempty" yaml:"motherId,omitempty"`
	SpouseIDs   []string `json:"spouseIds,omitempty" yaml:"spouseIds,omitempty"`
	ChildIDs    []string `json:"childIds,omitempty" yaml:"childIds,omitempty"`
	Collections []string `json:"collections,omitempty" yaml:"collections,omitempty"`
	Surnames    Surnames `json:"surnames,omitempty" yaml:"surnames,omitempty"`
	Sex         Sex      `json:"sex,omitempty" yaml:"sex,omitempty"`
	BirthYear   int      `json:"birthYear,omitempty" yaml:"birthYear,omitempty"`
	DeathYear   int      `json:"deathYear,omitempty" yaml:"deathYear,omitempty"`
}

// DisplayName returns Name, falling back to the id.
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Edge is a directed relationship between two people.
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Relation Relation `json:"relation"`
}

// GraphStats summarizes a family store.
type GraphStats struct {
	PersonCount int `json:"personCount"`
	ParentEdges int `json:"parentEdges"`
	SpouseEdges int `json:"spouseEdges"`
	Collections int `json:"collections"`
}
