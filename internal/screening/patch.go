package screening

// Patch is a partial update. Nil fields keep their current value.
type Patch struct {
	Title    *string `json:"title,omitempty"`
	Date     *string `json:"date,omitempty"`
	Time     *string `json:"time,omitempty"`
	Duration *int    `json:"duration,omitempty"`
	Hall     *string `json:"hall,omitempty"`
	Genre    *string `json:"genre,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Date == nil && p.Time == nil &&
		p.Duration == nil && p.Hall == nil && p.Genre == nil
}

// ApplyTo overlays p onto d.
func (p Patch) ApplyTo(d Draft) Draft {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Time != nil {
		d.Time = *p.Time
	}
	if p.Duration != nil {
		d.Duration = *p.Duration
	}
	if p.Hall != nil {
		d.Hall = *p.Hall
	}
	if p.Genre != nil {
		d.Genre = *p.Genre
	}
	return d
}

// PatchFrom returns a patch that sets every field of s.
func PatchFrom(s *Screening) Patch {
	d := s.Draft()
	return Patch{
		Title:    &d.Title,
		Date:     &d.Date,
		Time:     &d.Time,
		Duration: &d.Duration,
		Hall:     &d.Hall,
		Genre:    &d.Genre,
	}
}

// Apply validates the patched fields of s and returns the updated copy.
// The id and creation time never change.
func Apply(s *Screening, p Patch, halls []string) (*Screening, error) {
	updated, err := New(p.ApplyTo(s.Draft()), halls)
	if err != nil {
		return nil, err
	}
	updated.ID = s.ID
	updated.CreatedAt = s.CreatedAt
	return updated, nil
}
