package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/zaalplan/internal/screening"
)

const (
	fieldTitle = iota
	fieldTime
	fieldDuration
	fieldGenre
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Time", "Duration", "Genre"}

// form is the manual entry panel. It edits an existing screening when id is
// set and creates a new one otherwise.
type form struct {
	id     string
	hall   string
	date   string
	inputs [fieldCount]textinput.Model
	focus  int
	errs   *screening.ValidationError
}

func newForm(id string, d screening.Draft) form {
	f := form{id: id, hall: d.Hall, date: d.Date}

	values := [fieldCount]string{d.Title, d.Time, "", d.Genre}
	if d.Duration > 0 {
		values[fieldDuration] = strconv.Itoa(d.Duration)
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[fieldTime].CharLimit = 5
	f.inputs[fieldTime].Placeholder = "HH:MM"
	f.inputs[fieldDuration].CharLimit = 4
	f.inputs[fieldDuration].Placeholder = "minutes"
	f.inputs[fieldGenre].Placeholder = "optional"

	f.focusField(fieldTitle)
	return f
}

func (f *form) focusField(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// draft reads the inputs. A duration that is not a number is reported the
// same way the domain reports its own field errors.
func (f form) draft() (screening.Draft, error) {
	d := screening.Draft{
		Title: f.value(fieldTitle),
		Time:  f.value(fieldTime),
		Genre: f.value(fieldGenre),
		Hall:  f.hall,
		Date:  f.date,
	}
	if raw := f.value(fieldDuration); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return d, screening.FieldInvalid("duration", "must be a whole number of minutes")
		}
		d.Duration = n
	}
	return d, nil
}

// patch returns the changes of an edit form as a patch.
func (f form) patch() (screening.Patch, error) {
	d, err := f.draft()
	if err != nil {
		return screening.Patch{}, err
	}
	return screening.Patch{
		Title:    &d.Title,
		Time:     &d.Time,
		Duration: &d.Duration,
		Genre:    &d.Genre,
	}, nil
}
