package vocab

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed frameworks.yaml
var frameworksYAML []byte

// Framework describes one seeded compliance framework.
type Framework struct {
	ID               string     `yaml:"id"`
	Label            string     `yaml:"label"`
	Description      string     `yaml:"description"`
	Version          string     `yaml:"version"`
	DocumentationURL string     `yaml:"url"`
	PublicationDate  string     `yaml:"published"` // xsd:date lexical form
	Baselines        []Baseline `yaml:"baselines,omitempty"`
}

// Baseline is a named control-set tier within a framework.
type Baseline struct {
	Name     string `yaml:"name"`
	Controls int    `yaml:"controls"`
}

type catalogFile struct {
	Frameworks []Framework `yaml:"frameworks"`
}

// catalog holds the parsed seed data in file order.
var catalog []Framework

// catalogIndex maps framework id to its catalog position.
var catalogIndex map[string]int

func init() {
	var file catalogFile
	if err := yaml.Unmarshal(frameworksYAML, &file); err != nil {
		panic(fmt.Sprintf("vocab: embedded framework catalog is malformed: %v", err))
	}
	catalog = file.Frameworks
	catalogIndex = make(map[string]int, len(catalog))
	for i, fw := range catalog {
		if _, dup := catalogIndex[fw.ID]; dup {
			panic(fmt.Sprintf("vocab: duplicate framework id %q in catalog", fw.ID))
		}
		catalogIndex[fw.ID] = i
	}
}

// Frameworks returns the catalog in its fixed seed order.
func Frameworks() []Framework {
	out := make([]Framework, len(catalog))
	copy(out, catalog)
	return out
}

// FrameworkCount returns the number of seeded frameworks.
func FrameworkCount() int {
	return len(catalog)
}

// FrameworkByID looks a framework up by identifier.
func FrameworkByID(id string) (Framework, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Framework{}, false
	}
	return catalog[i], true
}

// IsFramework reports whether id is in the closed framework set.
func IsFramework(id string) bool {
	_, ok := catalogIndex[id]
	return ok
}

// BaselineOf resolves a baseline name for a framework.
func BaselineOf(frameworkID, name string) (Baseline, bool) {
	fw, ok := FrameworkByID(frameworkID)
	if !ok {
		return Baseline{}, false
	}
	for _, b := range fw.Baselines {
		if b.Name == name {
			return b, true
		}
	}
	return Baseline{}, false
}

// BaselineID returns the local name of a baseline individual, e.g.
// "FedRAMPModerate".
func BaselineID(frameworkID, name string) string {
	return frameworkID + name
}
