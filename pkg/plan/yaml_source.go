package plan

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlCatalog mirrors the on-disk catalog format:
//
//	plans:
//	  basico:
//	    name: Básico
//	    features:
//	      - agendamento_online
//	    limits:
//	      max_pacientes: 100
//	      max_usuarios: 3
//	      max_agendamentos_mes: 200
//	  profissional:
//	    name: Profissional
//	    features: [agendamento_online, integracao_whatsapp]
//	    limits:
//	      max_pacientes: null # unlimited
//
// A limit set to null (or omitted) means unlimited.
type yamlCatalog struct {
	Plans map[string]yamlPlan `yaml:"plans"`
}

type yamlPlan struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Features    []string          `yaml:"features"`
	Limits      map[string]*int64 `yaml:"limits"`
	Public      bool              `yaml:"public"`
}

// ParseYAML decodes a plan catalog from YAML and validates it against the
// closed feature and limit key sets.
func ParseYAML(data []byte) (map[string]Plan, error) {
	var catalog yamlCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan, len(catalog.Plans))
	for id, yp := range catalog.Plans {
		p := Plan{
			ID:          id,
			Name:        yp.Name,
			Description: yp.Description,
			Limits:      make(map[LimitKey]int64, len(yp.Limits)),
			Public:      yp.Public,
		}
		for _, f := range yp.Features {
			p.Features = append(p.Features, FeatureKey(f))
		}
		for key, max := range yp.Limits {
			if max == nil {
				// explicit null: unlimited, same as omitting the key
				continue
			}
			p.Limits[LimitKey(key)] = *max
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		plans[id] = p
	}
	return plans, nil
}

// NewYAMLSource reads a plan catalog file once and serves it from memory.
func NewYAMLSource(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, fmt.Errorf("read %s: %w", path, err))
	}
	plans, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return NewInMemSource(plans)
}
