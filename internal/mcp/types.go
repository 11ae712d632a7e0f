package mcp

import (
	"maps"
	"slices"

	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

// Service is one registered service.
type Service struct {
	// Name is the registry key. It is not stored inside the entry.
	Name string `json:"-"`

	// Command is the executable that starts the service.
	Command string `json:"command"`

	// Args are passed to Command.
	Args []string `json:"args,omitempty"`

	// Env holds variables set for the service process.
	Env map[string]string `json:"env,omitempty"`

	extra fileutil.Fields
}

// Clone returns a deep copy of s.
func (s *Service) Clone() *Service {
	c := *s
	c.Args = slices.Clone(s.Args)
	c.Env = maps.Clone(s.Env)
	c.extra = maps.Clone(s.extra)
	return &c
}

// MarshalJSON writes the entry with any members devdeck does not model.
func (s *Service) MarshalJSON() ([]byte, error) {
	known := map[string]any{"command": s.Command}
	if len(s.Args) > 0 {
		known["args"] = s.Args
	}
	if len(s.Env) > 0 {
		known["env"] = s.Env
	}
	return fileutil.JoinFields(s.extra, known)
}

func (s *Service) UnmarshalJSON(data []byte) error {
	f, err := fileutil.SplitFields(data)
	if err != nil {
		return err
	}
	if err := f.Take("command", &s.Command); err != nil {
		return err
	}
	if err := f.Take("args", &s.Args); err != nil {
		return err
	}
	if err := f.Take("env", &s.Env); err != nil {
		return err
	}
	s.extra = f.Rest()
	return nil
}

// File is the registry file.
type File struct {
	// Services maps service names to their definitions.
	Services map[string]*Service `json:"services"`

	extra fileutil.Fields
}

// NewFile creates an empty registry file.
func NewFile() *File {
	return &File{Services: make(map[string]*Service)}
}

// Names returns the service names in sorted order.
func (f *File) Names() []string {
	return slices.Sorted(maps.Keys(f.Services))
}

// MarshalJSON always writes a "services" object, empty if need be.
func (f *File) MarshalJSON() ([]byte, error) {
	services := f.Services
	if services == nil {
		services = map[string]*Service{}
	}
	return fileutil.JoinFields(f.extra, map[string]any{"services": services})
}

// UnmarshalJSON fills each service's Name from its key and drops null entries.
func (f *File) UnmarshalJSON(data []byte) error {
	fields, err := fileutil.SplitFields(data)
	if err != nil {
		return err
	}
	if err := fields.Take("services", &f.Services); err != nil {
		return err
	}
	if f.Services == nil {
		f.Services = make(map[string]*Service)
	}
	for name, s := range f.Services {
		if s == nil {
			delete(f.Services, name)
			continue
		}
		s.Name = name
	}
	f.extra = fields.Rest()
	return nil
}
