package scene

// Source lists object names and resolves their records. Every name returned
// by Names must resolve through Record.
type Source interface {
	Names() ([]string, error)
	Record(name string) (Record, error)
}

// Invalidator is implemented by sources that cache what they read.
type Invalidator interface {
	Invalidate()
}

// FileSource reads a description file once and serves it from memory until
// Invalidate is called.
type FileSource struct {
	Path string

	desc *Description
}

// NewFileSource returns a source for the description at path. Nothing is
// read until the first call to Names or Record.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Names returns the described object names in file order.
func (s *FileSource) Names() ([]string, error) {
	desc, err := s.load()
	if err != nil {
		return nil, err
	}
	return desc.Names()
}

// Record returns the record for name.
func (s *FileSource) Record(name string) (Record, error) {
	desc, err := s.load()
	if err != nil {
		return Record{}, err
	}
	return desc.Record(name)
}

// Invalidate drops the cached description so the next call re-reads the file.
func (s *FileSource) Invalidate() {
	s.desc = nil
}

func (s *FileSource) load() (*Description, error) {
	if s.desc != nil {
		return s.desc, nil
	}
	desc, err := ReadDescription(s.Path)
	if err != nil {
		return nil, err
	}
	s.desc = desc
	return desc, nil
}
