package db

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Default file names, matching the layout of the bundled sample data.
const (
	DefaultMembersFile       = "members.csv"
	DefaultSurveysFile       = "surveys.csv"
	DefaultStatusesFile      = "statuses.csv"
	DefaultParticipationFile = "participation.csv"
)

// Source names the four delimited files a Store is loaded from.
type Source struct {
	FS                fs.FS
	MembersFile       string
	SurveysFile       string
	StatusesFile      string
	ParticipationFile string
}

// FSSource reads the default file names from fsys.
func FSSource(fsys fs.FS) Source {
	return Source{FS: fsys}.withDefaults()
}

// DirSource reads the default file names from a directory on disk.
func DirSource(dir string) Source {
	return FSSource(os.DirFS(dir))
}

func (s Source) withDefaults() Source {
	if s.MembersFile == "" {
		s.MembersFile = DefaultMembersFile
	}
	if s.SurveysFile == "" {
		s.SurveysFile = DefaultSurveysFile
	}
	if s.StatusesFile == "" {
		s.StatusesFile = DefaultStatusesFile
	}
	if s.ParticipationFile == "" {
		s.ParticipationFile = DefaultParticipationFile
	}
	return s
}

// readRecords streams every data row of name through fn. The first row is the
// header. An empty file yields no rows.
func readRecords(ctx context.Context, fsys fs.FS, name string, fn func(Record) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if fsys == nil {
		return fmt.Errorf("load %s: no source configured", name)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	names, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: read header: %w", name, err)
	}
	header := NewHeader(names)
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		line, _ := r.FieldPos(0)
		if err := fn(NewRecord(header, fields, line)); err != nil {
			return fmt.Errorf("load %s line %d: %w", name, line, err)
		}
	}
}
