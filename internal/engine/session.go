package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/text/language"

	"salesdash/internal/i18n"
	"salesdash/internal/models"
)

// Settings are the tunables of the sniff/filter/aggregate pipeline.
type Settings struct {
	PreviewRows           int
	CategoricalThreshold  int
	MaxCategoricalFilters int
}

func DefaultSettings() Settings {
	return Settings{
		PreviewRows:           100,
		CategoricalThreshold:  20,
		MaxCategoricalFilters: 5,
	}
}

// Session is the state of one dashboard client: its language, the active
// upload and the filters offered for it. Every pipeline call goes through a
// Session instead of package-level state.
type Session struct {
	ID string

	settings Settings
	cache    *Cache

	mu       sync.Mutex
	lang     language.Tag
	fileName string
	data     []byte
	options  models.FilterOptions
	readErr  error
}

func NewSession(id string, lang language.Tag, settings Settings) *Session {
	return &Session{
		ID:       id,
		lang:     lang,
		settings: settings,
		cache:    NewCache(),
	}
}

// Language returns the session's label language.
func (s *Session) Language() language.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage changes the label language.
func (s *Session) SetLanguage(lang language.Tag) {
	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()
}

// FileName returns the name of the active upload.
func (s *Session) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileName
}

// Upload makes data the active file and sniffs its preview. A *ReadError
// from the preview is returned and remembered: no filters are offered, but
// the session still renders from the full load attempt.
func (s *Session) Upload(name string, data []byte) (models.FilterOptions, error) {
	opts := models.FilterOptions{Categorical: []models.CategoricalFilter{}}

	preview, err := LoadPreview(name, data, s.settings.PreviewRows)
	if err == nil {
		schema := Sniff(preview, s.settings.CategoricalThreshold)
		opts = Offer(preview, schema, s.settings.MaxCategoricalFilters)
	}

	s.mu.Lock()
	s.fileName = name
	s.data = data
	s.options = opts
	s.readErr = err
	s.mu.Unlock()

	return s.Options(), err
}

// Options returns the offered filters labelled in the session language.
func (s *Session) Options() models.FilterOptions {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := i18n.For(s.lang)
	out := models.FilterOptions{Categorical: make([]models.CategoricalFilter, 0, len(s.options.Categorical))}
	for _, f := range s.options.Categorical {
		f.Label = t.FilterBy + " " + f.Column
		f.Values = append([]string(nil), f.Values...)
		out.Categorical = append(out.Categorical, f)
	}
	if d := s.options.DateRange; d != nil {
		dd := *d
		dd.Label = t.DateRange
		out.DateRange = &dd
	}
	return out
}

// ReadErr returns the error of the last preview, if any.
func (s *Session) ReadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readErr
}

// Table returns the full parsed table of the active upload. It is parsed
// once per distinct file.
func (s *Session) Table() (*Table, error) {
	s.mu.Lock()
	name, data := s.fileName, s.data
	s.mu.Unlock()

	if data == nil {
		return nil, ErrNoFile
	}
	return s.cache.Load(name, data)
}

// spec builds the FilterSpec for sel. After a preview failure no filters
// were offered, so the selection is ignored.
func (s *Session) spec(sel models.Selection) (FilterSpec, error) {
	s.mu.Lock()
	opts, readErr := s.options, s.readErr
	s.mu.Unlock()

	if readErr != nil {
		return FilterSpec{}, nil
	}
	return BuildFilterSpec(opts, sel)
}

// Filtered returns the active table narrowed by sel.
func (s *Session) Filtered(sel models.Selection) (*Table, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	spec, err := s.spec(sel)
	if err != nil {
		return nil, err
	}
	return Apply(t, spec), nil
}

// Render runs one full pass: filter, aggregate and lay out. Read failures
// degrade to a dashboard of zeros carrying the read-error notice; only an
// invalid selection or a missing upload is returned as an error.
func (s *Session) Render(sel models.Selection) (*models.Dashboard, error) {
	lang := s.Language()
	notice := ""
	if s.ReadErr() != nil {
		notice = i18n.For(lang).ReadError
	}

	spec, err := s.spec(sel)
	if err != nil {
		return nil, err
	}

	t, err := s.Table()
	var rerr *ReadError
	switch {
	case errors.As(err, &rerr):
		d := BuildDashboard(Aggregate(NewTable(nil, nil), nil), lang)
		d.Notice = i18n.For(lang).ReadError
		return d, nil
	case err != nil:
		return nil, err
	}

	filtered := Apply(t, spec)
	d := BuildDashboard(Aggregate(filtered, ResolveRoles(t.Names())), lang)
	d.Notice = notice
	return d, nil
}

// Export writes the filtered table as CSV.
func (s *Session) Export(sel models.Selection, w io.Writer) error {
	t, err := s.Filtered(sel)
	if err != nil {
		return err
	}
	if err := WriteCSV(w, t); err != nil {
		return fmt.Errorf("export %s: %w", s.FileName(), err)
	}
	return nil
}
