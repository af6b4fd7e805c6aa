package docsearch

// SectionRef describes one enclosing section of a page element, identified
// by its heading. Ancestors are ordered outermost to innermost.
type SectionRef struct {
	// Heading tag of the section (e.g. "h2").
	Type string `json:"type"`

	// Native anchor id of the section, if the markup carries one.
	ID *string `json:"id"`

	// Heading text, whitespace preserved.
	Text string `json:"text"`
}

// ContentUnit is one structural element (heading, paragraph, list item)
// extracted from a page. Units exist only during a build; they are the input
// the index builder consumes.
type ContentUnit struct {
	// Source page location.
	URL string `json:"url"`

	// Structural role tag of the element (e.g. "h1", "p", "li").
	Type string `json:"type"`

	// Position within the page's element stream. Stable per page, used
	// only for ordering within a page.
	Order int `json:"order"`

	// Native anchor id from the source markup, if present.
	ID *string `json:"id"`

	// Enclosing sections, outermost first.
	Ancestors []SectionRef `json:"ancestors"`

	// Page title.
	Title string `json:"title"`

	// Original text content, whitespace preserved.
	RawText string `json:"text"`
}

// Validate returns an error if the unit contains invalid fields.
func (u *ContentUnit) Validate() error {
	if u.URL == "" {
		return Errorf(EINVALID, "content unit URL required")
	}
	if u.Type == "" {
		return Errorf(EINVALID, "content unit element type required")
	}
	return nil
}

// ContentRecord is the persisted, content-id-keyed metadata needed to render
// a search result for a unit.
type ContentRecord struct {
	URL         string       `json:"url"`
	Type        string       `json:"type"`
	Order       int          `json:"order"`
	ID          *string      `json:"id"`
	Ancestors   []SectionRef `json:"ancestors"`
	Title       string       `json:"title"`
	RawText     string       `json:"raw_text"`
	CleanedText string       `json:"cleaned_text"`
}

// RecordStore provides read access to content records by content id.
type RecordStore interface {
	// Record returns the record stored for the given content id.
	// The second return value reports whether the id is known.
	Record(id string) (*ContentRecord, bool)
}

// Registry maps content ids to content records. Writes are last-write-wins
// per id: two units whose normalized text is byte-identical share a content
// id, and the later write silently supersedes the earlier record while the
// index keeps one posting per occurrence. This is a known identity collision
// inherited from the index design, preserved deliberately.
//
// A Registry is mutated only by the single-threaded build; once a serving
// process loads it, it is read-only and safe for concurrent use.
type Registry struct {
	records map[string]*ContentRecord
}

var _ RecordStore = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*ContentRecord)}
}

// Put stores the record under the given content id, replacing any record
// previously stored for that id.
func (r *Registry) Put(id string, rec *ContentRecord) {
	r.records[id] = rec
}

// Record returns the record stored for the given content id.
func (r *Registry) Record(id string) (*ContentRecord, bool) {
	rec, ok := r.records[id]
	return rec, ok
}

// Len returns the number of distinct content ids in the registry.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns the underlying id-to-record mapping. The caller must not
// mutate it after the registry is shared.
func (r *Registry) Records() map[string]*ContentRecord {
	return r.records
}

// NewRegistryFromRecords builds a registry around an existing mapping,
// typically one decoded from a persisted artifact.
func NewRegistryFromRecords(records map[string]*ContentRecord) *Registry {
	if records == nil {
		records = make(map[string]*ContentRecord)
	}
	return &Registry{records: records}
}
